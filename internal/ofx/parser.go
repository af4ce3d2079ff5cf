// Package ofx parses OFX/QFX bank statements into entries that can be
// replayed through the ledger engine.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
)

// StatementEntry is one statement line, direction already derived from the
// amount's sign. Amount is always a positive magnitude.
type StatementEntry struct {
	Date        time.Time
	Payee       string
	Memo        string
	FiTID       string
	AccountID   string
	Amount      decimal.Decimal
	Direction   model.CategoryType
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns its statement entries.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]StatementEntry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []StatementEntry
	var bankStmts, ccStmts int

	// Process bank messages
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			entries = append(entries, p.processTranList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	// Process credit card messages
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			entries = append(entries, p.processTranList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) processTranList(list *ofxgo.TransactionList, accountID string) []StatementEntry {
	if list == nil {
		return nil
	}

	entries := make([]StatementEntry, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		entries = append(entries, p.convertTransaction(ofxTx, accountID))
	}
	return entries
}

// convertTransaction converts an OFX transaction to a statement entry. OFX
// amounts are exact rationals with negative values for debits; the sign
// becomes the entry direction and the magnitude stays exact decimal.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) StatementEntry {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	direction := model.CategoryTypeIncome
	if amount.IsNegative() {
		direction = model.CategoryTypeExpense
		amount = amount.Neg()
	}

	return StatementEntry{
		FiTID:     string(ofxTx.FiTID),
		Date:      ofxTx.DtPosted.Time,
		Payee:     p.extractPayee(ofxTx),
		Memo:      string(ofxTx.Memo),
		AccountID: accountID,
		Amount:    amount,
		Direction: direction,
	}
}

// extractPayee tries to get a clean counterparty name from OFX data.
func (p *Parser) extractPayee(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	return name
}

// isGenericDescription reports whether a NAME field carries no useful
// counterparty information.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT", "CREDIT", "PAYMENT", "PURCHASE", "POS", "ATM", "CHECK",
		"WITHDRAWAL", "DEPOSIT", "TRANSFER",
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upper == g {
			return true
		}
	}
	return false
}
