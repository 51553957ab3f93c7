// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registrations    prometheus.Counter
	VotesCast        prometheus.Counter
	AccountsApproved prometheus.Counter
	AccountsRejected prometheus.Counter
	ReceiptLookups   prometheus.Counter
	FailedLogins     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_registrations_total",
			Help: "Total number of accounts registered",
		}),
		VotesCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_votes_cast_total",
			Help: "Total number of ballots cast",
		}),
		AccountsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_accounts_approved_total",
			Help: "Total number of accounts approved by an administrator",
		}),
		AccountsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_accounts_rejected_total",
			Help: "Total number of accounts rejected by an administrator",
		}),
		ReceiptLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_receipt_lookups_total",
			Help: "Total number of public confirmation-code lookups",
		}),
		FailedLogins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_failed_logins_total",
			Help: "Total number of failed authentication attempts",
		}),
	}
}
