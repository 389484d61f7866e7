// Package dashboards holds the per-role landing page aggregates.
package dashboards
