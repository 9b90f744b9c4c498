// Package order contains the Order aggregate and its lifecycle state
// machine. The aggregate guards who may perform each transition (the
// assigned rider advances the delivery flow, the owning customer cancels and
// rates) and owns the live tracking fields: rider position, ETA and the
// write-once first-report timestamp.
package order
