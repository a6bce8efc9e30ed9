// internal/intent/catalog.go
package intent

import "regexp"

// Name identifies one supported request category. The set is closed;
// dispatch logic switches over these constants.
type Name string

const (
	PayslipDownload        Name = "payslip_download"
	PayStatement           Name = "pay_statement"
	BankAccountChange      Name = "bank_account_change"
	ApplyLeave             Name = "apply_leave"
	AttendanceCorrection   Name = "attendance_correction"
	LeaveBalance           Name = "leave_balance"
	EmploymentLetter       Name = "employment_letter"
	SalaryCertificate      Name = "salary_certificate"
	AddressProofLetter     Name = "address_proof_letter"
	InsuranceECard         Name = "insurance_ecard"
	AddDependent           Name = "add_dependent"
	ReimbursementClaim     Name = "reimbursement_claim"
	UpdateContact          Name = "update_contact"
	UpdateEmergencyContact Name = "update_emergency_contact"
	Form16                 Name = "form16"
	PolicyQuery            Name = "policy_query"
	Unknown                Name = "unknown"
)

// Extractor pulls one named entity out of the ticket text. The value comes
// from the first capturing group when the pattern has groups, otherwise from
// the full match.
type Extractor struct {
	Entity  string
	Pattern *regexp.Regexp
}

// Definition describes how one intent is recognized.
type Definition struct {
	Name       Name
	Keywords   []string
	Patterns   []*regexp.Regexp
	Extractors []Extractor
	Priority   int
}

const monthAlternatives = `january|february|march|april|may|june|july|august|september|october|november|december`

// Catalog returns the recognition rules for every supported intent. Order
// matters: scoring keeps the first definition on equal confidence, so more
// specific intents are listed before broader ones within each group.
func Catalog() []Definition {
	return []Definition{
		{
			Name:     PayslipDownload,
			Keywords: []string{"payslip", "pay slip", "salary slip", "wage slip", "pay stub"},
			Patterns: compile(
				`(need|want|get|download|send|share|provide)\s+.*payslip`,
				`payslip\s+.*\s+(month|year|for)`,
				`(december|january|february|march|april|may|june|july|august|september|october|november)\s+payslip`,
				`payslip\s+(december|january|february|march|april|may|june|july|august|september|october|november)`,
				`last\s+month.*payslip`,
				`this\s+month.*payslip`,
			),
			Extractors: extractors(
				"month", `(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)`,
				"year", `20\d{2}`,
			),
			Priority: 1,
		},
		{
			Name:     PayStatement,
			Keywords: []string{"pay statement", "salary statement", "ytd", "year to date", "earnings statement"},
			Patterns: compile(
				`(need|want|get|download|send)\s+.*pay\s+statement`,
				`salary\s+statement`,
				`ytd\s+(salary|earnings|statement)`,
				`year\s+to\s+date\s+(salary|statement)`,
				`(from|between)\s+.*\s+(to|and)\s+.*statement`,
			),
			Extractors: extractors(
				"from_month", `from\s+(`+monthAlternatives+`)`,
				"to_month", `to\s+(`+monthAlternatives+`)`,
				"year", `20\d{2}`,
			),
			Priority: 1,
		},
		{
			Name:     BankAccountChange,
			Keywords: []string{"bank account", "salary account", "account change", "ifsc", "bank change"},
			Patterns: compile(
				`(change|update|modify)\s+.*bank\s+account`,
				`(change|update|modify)\s+.*salary\s+account`,
				`new\s+bank\s+account`,
				`bank\s+account\s+change`,
			),
			Extractors: extractors(
				"bank_name", `(hdfc|icici|sbi|axis|kotak|yes bank|idfc|indusind)`,
				"account_number", `\d{9,18}`,
				"ifsc", `[A-Z]{4}0[A-Z0-9]{6}`,
			),
			Priority: 2,
		},
		{
			Name:     ApplyLeave,
			Keywords: []string{"leave", "time off", "day off", "vacation", "holiday"},
			Patterns: compile(
				`(apply|request|need|want|take)\s+.*\s+leave`,
				`leave\s+.*\s+(from|on|for)\s+`,
				`(casual|sick|annual|earned|marriage|maternity|paternity)\s+leave`,
				`off\s+on\s+\d`,
				`leave\s+from\s+\d+\s+to\s+\d+`,
			),
			Extractors: extractors(
				"leave_type", `(casual|sick|medical|annual|earned|privilege|maternity|paternity|marriage|bereavement|comp)`,
				"from_date", `from\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4}|\d{1,2}\s+\w+)`,
				"to_date", `to\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4}|\d{1,2}\s+\w+)`,
				"single_date", `on\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4}|\d{1,2}\s+\w+)`,
				"reason", `(for|because|due to)\s+(.+?)(?:\.|$)`,
			),
			Priority: 1,
		},
		{
			Name:     AttendanceCorrection,
			Keywords: []string{"attendance", "punch", "swipe", "clock in", "clock out", "time correction"},
			Patterns: compile(
				`attendance\s+(correction|issue|problem|missing)`,
				`(missed|forgot|forgotten)\s+(punch|swipe|clock)`,
				`mark\s+.*\s+attendance`,
				`attendance\s+not\s+(marked|recorded|showing)`,
			),
			Extractors: extractors(
				"date", `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4})`,
				"time", `(\d{1,2}:\d{2}\s*(am|pm)?)`,
			),
			Priority: 2,
		},
		{
			Name:     LeaveBalance,
			Keywords: []string{"leave balance", "remaining leave", "available leave", "how many leaves"},
			Patterns: compile(
				`(check|show|what is|how many)\s+.*\s+leave\s+balance`,
				`leave\s+balance`,
				`remaining\s+(leaves|leave)`,
				`(available|pending)\s+leaves?`,
			),
			Extractors: extractors(
				"leave_type", `(casual|sick|annual|earned|privilege|all)`,
			),
			Priority: 1,
		},
		{
			Name:     EmploymentLetter,
			Keywords: []string{"employment letter", "experience letter", "service letter", "relieving letter"},
			Patterns: compile(
				`(need|want|request|generate|issue)\s+.*employment\s+letter`,
				`employment\s+(letter|certificate)`,
				`(experience|service|relieving)\s+letter`,
				`letter\s+(for|of)\s+employment`,
			),
			Extractors: extractors(
				"letter_type", `(employment|experience|service|relieving)`,
				"purpose", `(for|purpose)\s+(.+?)(?:\.|$)`,
			),
			Priority: 1,
		},
		{
			Name:     SalaryCertificate,
			Keywords: []string{"salary certificate", "income certificate", "salary letter"},
			Patterns: compile(
				`(need|want|request)\s+.*salary\s+certificate`,
				`salary\s+(certificate|letter)`,
				`income\s+(certificate|proof|letter)`,
				`certificate\s+(for|of)\s+salary`,
			),
			Extractors: extractors(
				"purpose", `(for|purpose)\s+(.+?)(?:\.|$)`,
			),
			Priority: 1,
		},
		{
			Name:     AddressProofLetter,
			Keywords: []string{"address proof", "residence letter", "bonafide certificate"},
			Patterns: compile(
				`address\s+proof`,
				`bonafide\s+(certificate|letter)`,
				`residence\s+(proof|letter)`,
			),
			Extractors: extractors(
				"purpose", `(for|purpose)\s+(.+?)(?:\.|$)`,
			),
			Priority: 2,
		},
		{
			Name:     InsuranceECard,
			Keywords: []string{"e-card", "ecard", "health card", "insurance card", "medi assist"},
			Patterns: compile(
				`(need|want|request|download)\s+.*(e-?card|health\s+card|insurance\s+card)`,
				`(medical|health)\s+insurance\s+card`,
				`medi\s*assist\s+card`,
				`group\s+insurance\s+(card|e-?card)`,
			),
			Extractors: extractors(
				"for_whom", `(self|spouse|child|parent|dependent|family)`,
			),
			Priority: 1,
		},
		{
			Name:     AddDependent,
			Keywords: []string{"add dependent", "add family", "dependent addition", "newborn", "new child"},
			Patterns: compile(
				`add\s+.*\s+(dependent|family\s+member)`,
				`(newborn|new\s+baby|new\s+child)\s+.*\s+(add|include|enroll)`,
				`(include|enroll)\s+.*\s+(spouse|child|parent)`,
				`dependent\s+(addition|enrollment)`,
			),
			Extractors: extractors(
				"relationship", `(spouse|child|son|daughter|parent|father|mother)`,
				"name", `name\s*[:\-]?\s*([A-Za-z\s]+)`,
			),
			Priority: 2,
		},
		{
			Name:     ReimbursementClaim,
			Keywords: []string{"reimbursement", "claim", "medical claim", "expense claim"},
			Patterns: compile(
				`(submit|raise|file)\s+.*\s+(reimbursement|claim)`,
				`medical\s+(reimbursement|claim)`,
				`(expense|travel)\s+claim`,
				`claim\s+(reimbursement|expenses)`,
			),
			Extractors: extractors(
				"claim_type", `(medical|travel|expense|food)`,
				"amount", `(?:rs\.?|inr|₹)\s*(\d+[,\d]*)`,
			),
			Priority: 2,
		},
		{
			Name:     UpdateContact,
			Keywords: []string{"update phone", "update email", "update address", "change contact", "update mobile"},
			Patterns: compile(
				`(update|change|modify)\s+.*(phone|mobile|email|address|contact)`,
				`(new|changed)\s+(phone|mobile|email|address)`,
				`contact\s+(update|change)`,
			),
			Extractors: extractors(
				"field", `(phone|mobile|email|address)`,
				"value", `(?:to|is)\s+(.+?)(?:\.|$)`,
			),
			Priority: 2,
		},
		{
			Name:     UpdateEmergencyContact,
			Keywords: []string{"emergency contact", "emergency number"},
			Patterns: compile(
				`(update|change|add)\s+.*\s+emergency\s+contact`,
				`emergency\s+contact\s+(update|change)`,
			),
			Extractors: extractors(
				"name", `name\s*[:\-]?\s*([A-Za-z\s]+)`,
				"phone", `(\d{10})`,
			),
			Priority: 2,
		},
		{
			Name:     Form16,
			Keywords: []string{"form 16", "form-16", "tax certificate"},
			Patterns: compile(
				`need\s+.*form\s*16`,
				`form\s*16\s+for`,
				`tax\s+certificate`,
			),
			Extractors: extractors(
				"financial_year", `20\d{2}-?\d{2}`,
			),
			Priority: 1,
		},
		{
			Name:     PolicyQuery,
			Keywords: []string{"policy", "rules", "procedure", "guidelines"},
			Patterns: compile(
				`what\s+is\s+.*policy`,
				`policy\s+on`,
				`rules\s+for`,
			),
			Extractors: extractors(
				"topic", `(leave|attendance|benefits|insurance|travel|probation)`,
			),
			Priority: 2,
		},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// extractors builds an ordered extractor list from (entity, pattern) pairs.
func extractors(pairs ...string) []Extractor {
	if len(pairs)%2 != 0 {
		panic("extractors: odd pair count")
	}
	out := make([]Extractor, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Extractor{
			Entity:  pairs[i],
			Pattern: regexp.MustCompile(pairs[i+1]),
		})
	}
	return out
}
