// Package services holds domain logic that does not belong to a single aggregate:
//   - TrackingIDAllocator: proposes the next free sequential labels
//   - MetricsCalculator: aggregates the active queue for the dashboard
package services
