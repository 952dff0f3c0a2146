package domain_test

import (
	"testing"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input string
		want  domain.TransactionType
	}{
		{"income", domain.TypeIncome},
		{"EXPENSE", domain.TypeExpense},
		{" transfer ", domain.TypeTransfer},
		{"unknown", domain.TypeUnknown},
		{"bogus", domain.TypeUnknown},
		{"", domain.TypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseTransactionType(tt.input), "input %q", tt.input)
	}
}
