package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagamentoIsFinal(t *testing.T) {
	cases := map[string]bool{
		PagamentoStatusPending:   false,
		PagamentoStatusApproved:  true,
		PagamentoStatusRejected:  true,
		PagamentoStatusCancelled: true,
		PagamentoStatusRefunded:  true,
		"in_process":             false,
	}
	for status, want := range cases {
		p := &Pagamento{Status: status}
		assert.Equal(t, want, p.IsFinal(), "status %q", status)
	}
}
