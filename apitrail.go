// Package apitrail tracks when CUDA API symbols appeared in and disappeared
// from the published toolkit documentation. It extracts the set of symbols
// documented for each release, diffs those sets, and searches the release
// history for the boundaries where a given symbol was introduced or removed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package apitrail
