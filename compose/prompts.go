package compose

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful assistant."

// CatchAll is the category for emails no canned response fits.
const CatchAll = 11

// Categories names the classification buckets, indexed from 1.
var Categories = [...]string{
	1:        "Order status",
	2:        "Return request",
	3:        "Refund status",
	4:        "Damaged item",
	5:        "Wrong item received",
	6:        "Shipping costs",
	7:        "Order cancellation",
	8:        "Change of delivery address",
	9:        "Payment problem",
	10:       "Invoice request",
	CatchAll: "Edge case",
}

var classifyPrompt = buildClassifyPrompt()

func buildClassifyPrompt() string {
	var b strings.Builder
	b.WriteString("Classify the customer email below into exactly one of these categories:\n\n")
	for n := 1; n < len(Categories); n++ {
		fmt.Fprintf(&b, "%d. %s\n", n, Categories[n])
	}
	fmt.Fprintf(&b, "\nUse %d when the email fits none of the other categories or asks about several things at once.\n", CatchAll)
	fmt.Fprintf(&b, "Answer with only the category number, an integer from 1 to %d, and nothing else.\n\nEmail:\n%%s", CatchAll)
	return b.String()
}

const supportPrompt = `You work in customer support for an online store. Write a reply to the customer email below.

- Answer in the same language as the customer.
- Be friendly, concise and concrete.
- Do not promise refunds, discounts or delivery dates you cannot confirm.
- If information is missing, such as an order number, ask for it.
- Sign off as "Customer Support".
- Return only the email body, without a subject line.

Customer email:
%s`

const instructionPrompt = `%s

Act as customer support and write an email that answers the following customer email:
%s`
