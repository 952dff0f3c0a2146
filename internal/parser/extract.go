package parser

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Field extractors. Each one pulls a single semantic field out of raw email
// text and reports (value, ok). A miss is a normal outcome, never an error.
// The patterns target the phrasings Omani bank notification emails use, with
// generic fallbacks for other formats.

// currencyCodes are the ISO codes the extractors recognize next to amounts.
const currencyCodes = `OMR|AED|SAR|QAR|BHD|KWD|USD|EUR|GBP|INR|PKR`

var (
	labeledAmountRe  = regexp.MustCompile(`(?i)\b(?:amount|amt)\b\s*(?:of)?\s*[:\-]?\s*(?:(?:` + currencyCodes + `)\s*)?([0-9][0-9,]*(?:\.[0-9]+)?)`)
	currencyAmountRe = regexp.MustCompile(`(?i)\b(?:` + currencyCodes + `)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	amountCurrencyRe = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:` + currencyCodes + `)\b`)

	labeledCurrencyRe = regexp.MustCompile(`(?i)\bcurrency\s*[:\-]?\s*([A-Za-z]{3})\b`)
	currencyCodeRe    = regexp.MustCompile(`(?i)\b(` + currencyCodes + `)\b`)

	accountNumberRe = regexp.MustCompile(`(?i)(?:a/c|acc(?:oun)?t)\s*(?:no\.?|number|#)?\s*[:\-]?\s*([0-9Xx*]{4,20})`)

	transactionIDRe = regexp.MustCompile(`(?i)\b(?:(?:transaction|txn)\s*(?:id|no\.?|number|ref(?:erence)?)|ref(?:erence)?\s*(?:no\.?|number|id)?)\s*[.:#\-]?\s*([A-Za-z0-9/\-]{4,})`)

	availableBalanceRe = regexp.MustCompile(`(?i)available\s+balance\s*(?:is)?\s*[:\-]?\s*(?:(?:` + currencyCodes + `)\s*)?([0-9][0-9,]*(?:\.[0-9]+)?)`)

	senderRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*from[ \t]*[:\-][ \t]*(.+?)[ \t]*$`),
		regexp.MustCompile(`(?i)\breceived\s+from\s+([^\n.,;]+)`),
		regexp.MustCompile(`(?i)\bsender(?:\s+name)?\s*[:\-]\s*([^\n]+)`),
	}
	receiverRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*to[ \t]*[:\-][ \t]*(.+?)[ \t]*$`),
		regexp.MustCompile(`(?i)\b(?:transferred|sent|paid)\s+to\s+([^\n.,;]+)`),
		regexp.MustCompile(`(?i)\b(?:receiver|beneficiary)(?:\s+name)?\s*[:\-]\s*([^\n]+)`),
	}
	partyCutoffRe = regexp.MustCompile(`(?i)\s+(?:on|via|at|dated|from|for)\s.*$`)

	branchLineRe    = regexp.MustCompile(`(?im)^[ \t]*branch[ \t]*[:\-][ \t]*(.+?)[ \t]*$`)
	branchPhraseRe  = regexp.MustCompile(`(?i)\bat\s+([A-Z][A-Za-z ]+?)\s+branch\b`)
	detailsLineRe   = regexp.MustCompile(`(?im)^[ \t]*(?:transaction\s+details|details|description|narration|remarks|purpose)[ \t]*[:\-][ \t]*(.+?)[ \t]*$`)
	countryLineRe   = regexp.MustCompile(`(?im)^[ \t]*country[ \t]*[:\-][ \t]*(.+?)[ \t]*$`)
	bankNameLineRe  = regexp.MustCompile(`(?im)^[ \t]*bank(?:[ \t]+name)?[ \t]*[:\-][ \t]*(.+?)[ \t]*$`)
	bankNameBodyRe  = regexp.MustCompile(`\b((?:[A-Z][A-Za-z]+ )+Bank(?: of [A-Z][A-Za-z]+)?|Bank [A-Z][A-Za-z]+)\b`)
	balanceLineRe   = regexp.MustCompile(`(?i)balance`)
)

// dateFormats pairs a locator pattern with the layouts its match may carry.
// Numeric day/month dates follow the day-first convention bank emails use.
var dateFormats = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?)`),
		[]string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"},
	},
	{
		regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4}(?:\s+\d{1,2}:\d{2}(?::\d{2})?)?)`),
		[]string{"02/01/2006 15:04:05", "02/01/2006 15:04", "2/1/2006 15:04:05", "2/1/2006 15:04", "02/01/2006", "2/1/2006"},
	},
	{
		regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4}(?:\s+\d{1,2}:\d{2}(?::\d{2})?)?)`),
		[]string{"02-01-2006 15:04:05", "02-01-2006 15:04", "2-1-2006 15:04", "02-01-2006", "2-1-2006"},
	},
	{
		regexp.MustCompile(`\b(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}(?:\s+\d{1,2}:\d{2}(?::\d{2})?)?)`),
		[]string{"2 Jan 2006 15:04:05", "2 Jan 2006 15:04", "2 January 2006 15:04", "2 Jan 2006", "2 January 2006"},
	},
	{
		regexp.MustCompile(`\b([A-Za-z]{3,9}\s+\d{1,2},\s*\d{4})`),
		[]string{"Jan 2, 2006", "January 2, 2006"},
	},
}

// knownBankDomains maps sender-address domains to display names.
var knownBankDomains = map[string]string{
	"bankmuscat":         "Bank Muscat",
	"nbo":                "National Bank of Oman",
	"bankdhofar":         "Bank Dhofar",
	"soharinternational": "Sohar International",
	"ahlibank":           "Ahli Bank",
	"oman-arabbank":      "Oman Arab Bank",
	"hsbc":               "HSBC",
	"sc":                 "Standard Chartered",
}

// ExtractAmount locates the transaction amount. A labeled "Amount:" wins;
// otherwise any value adjacent to a currency code counts, after dropping
// lines that mention a balance so "Available Balance" never shadows the
// transaction amount.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	if m := labeledAmountRe.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	scrubbed := dropBalanceLines(text)
	if m := currencyAmountRe.FindStringSubmatch(scrubbed); m != nil {
		return parseAmount(m[1])
	}
	if m := amountCurrencyRe.FindStringSubmatch(scrubbed); m != nil {
		return parseAmount(m[1])
	}
	return decimal.Zero, false
}

// ExtractAvailableBalance locates the post-transaction balance line.
func ExtractAvailableBalance(text string) (decimal.Decimal, bool) {
	if m := availableBalanceRe.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return decimal.Zero, false
}

// ExtractCurrency returns the ISO currency code, preferring a labeled
// "Currency:" line over any recognized code in the text.
func ExtractCurrency(text string) (string, bool) {
	if m := labeledCurrencyRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), true
	}
	if m := currencyCodeRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), true
	}
	return "", false
}

// ExtractAccountNumber finds the account reference, masked or full
// (e.g. "A/C No: XXXX1234").
func ExtractAccountNumber(text string) (string, bool) {
	if m := accountNumberRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractTransactionID finds the bank-supplied reference id.
func ExtractTransactionID(text string) (string, bool) {
	if m := transactionIDRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractDateTime finds the transaction timestamp within the text.
func ExtractDateTime(text string) (time.Time, bool) {
	for _, df := range dateFormats {
		m := df.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range df.layouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseEmailDate parses an RFC 5322 Date header, the fallback timestamp when
// the body carries no date of its own.
func ParseEmailDate(s string) (time.Time, bool) {
	t, err := mail.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExtractSender finds who the money came from ("From:" lines,
// "received from ...").
func ExtractSender(text string) (string, bool) {
	return extractParty(text, senderRes)
}

// ExtractReceiver finds who the money went to ("To:" lines,
// "transferred to ...").
func ExtractReceiver(text string) (string, bool) {
	return extractParty(text, receiverRes)
}

func extractParty(text string, res []*regexp.Regexp) (string, bool) {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := cleanParty(m[1]); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// cleanParty trims trailing context ("... on 12/01", "... via ATM") and
// punctuation off an extracted party name.
func cleanParty(s string) string {
	s = partyCutoffRe.ReplaceAllString(s, "")
	return strings.Trim(s, " \t.,;:-")
}

// ExtractBranch finds the branch, from a labeled line or an "at X Branch"
// phrase.
func ExtractBranch(text string) (string, bool) {
	if m := branchLineRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := branchPhraseRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractDetails finds the bank's free classification string
// (e.g. "TRANSFER", "SALARY", "Cash Dep").
func ExtractDetails(text string) (string, bool) {
	if m := detailsLineRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractCountry finds a labeled country line.
func ExtractCountry(text string) (string, bool) {
	if m := countryLineRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractBankName finds the bank in the text, from a labeled line or a
// capitalized "X Bank" / "Bank X" phrase.
func ExtractBankName(text string) (string, bool) {
	if m := bankNameLineRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := bankNameBodyRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// BankFromAddress infers the bank from the sender address domain.
// Known domains map to display names; anything else title-cases the
// second-level domain label.
func BankFromAddress(from string) (string, bool) {
	addr := from
	if parsed, err := mail.ParseAddress(from); err == nil {
		addr = parsed.Address
	}
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return "", false
	}
	host := strings.ToLower(strings.Trim(addr[at+1:], "<> "))
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", false
	}
	sld := labels[len(labels)-2]
	// Country-code second levels like "co.om" push the real label one left.
	if (sld == "co" || sld == "com") && len(labels) >= 3 {
		sld = labels[len(labels)-3]
	}
	if name, ok := knownBankDomains[sld]; ok {
		return name, true
	}
	if sld == "" {
		return "", false
	}
	return strings.ToUpper(sld[:1]) + sld[1:], true
}

// Keyword sets for type detection. Explicit debit/credit verbs outrank the
// generic word "transfer": a transfer notice that says "debited" is an
// expense from this account's point of view.
var (
	expenseKeywords  = []string{"debited", "withdrawn", "withdrawal", "purchase", "deducted", "payment", "paid", "spent"}
	incomeKeywords   = []string{"credited", "deposited", "deposit", "refund", "salary", "received from"}
	transferKeywords = []string{"transferred", "transfer"}
)

// DetectTransactionType classifies the direction of the transaction from
// keyword cues. ok is false when no signal was found at all.
func DetectTransactionType(text string) (domain.TransactionType, bool) {
	lower := strings.ToLower(text)
	for _, kw := range expenseKeywords {
		if strings.Contains(lower, kw) {
			return domain.TypeExpense, true
		}
	}
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return domain.TypeIncome, true
		}
	}
	for _, kw := range transferKeywords {
		if strings.Contains(lower, kw) {
			return domain.TypeTransfer, true
		}
	}
	return domain.TypeUnknown, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func dropBalanceLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !balanceLineRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
