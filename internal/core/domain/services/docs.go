// Package services contains stateless and near-stateless domain services
// that do not belong to a single aggregate.
//
// ProximityPolicy is the pure decision function that determines whether the
// rider is close enough to the delivery destination to notify the customer.
// NotificationGate optionally suppresses repeated notifications while an
// order stays inside the proximity condition.
package services
