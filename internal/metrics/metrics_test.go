package metrics

import (
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSettlement(t *testing.T) {
	r := New()
	r.ObserveSettlement(OutcomeSettled, "expense")
	r.ObserveSettlement(OutcomeSettled, "expense")
	r.ObserveSettlement(OutcomeAlreadySettled, "")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.settlements.WithLabelValues(OutcomeSettled, "expense")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.settlements.WithLabelValues(OutcomeAlreadySettled, "")))
}

func TestObserveSettlementNilRegistry(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() { r.ObserveSettlement(OutcomeFailed, "") })
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "ok", codeOf(nil))
	assert.Equal(t, "not_found", codeOf(connect.NewError(connect.CodeNotFound, errors.New("x"))))
	assert.Equal(t, "unknown", codeOf(errors.New("plain")))
}
