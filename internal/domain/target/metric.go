package target

import "fmt"

// Metric represents the kind of business event a target measures
type Metric string

const (
	MetricOrderConfirmed   Metric = "ORDER_CONFIRMED"
	MetricInvoiceValidated Metric = "INVOICE_VALIDATED"
	MetricInvoicePaid      Metric = "INVOICE_PAID"
)

// IsValid checks if the metric is a known Metric
func (m Metric) IsValid() bool {
	switch m {
	case MetricOrderConfirmed, MetricInvoiceValidated, MetricInvoicePaid:
		return true
	}
	return false
}

// String returns the string representation of Metric
func (m Metric) String() string {
	return string(m)
}

// Label returns the display label for the metric
func (m Metric) Label() string {
	switch m {
	case MetricOrderConfirmed:
		return "Sale Order Confirm"
	case MetricInvoiceValidated:
		return "Invoice Validation"
	case MetricInvoicePaid:
		return "Invoice Paid"
	}
	return string(m)
}

// ParseMetric converts a string to a Metric
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown target metric: %q", s)
	}
	return m, nil
}
