// Package toplist serves the IMDb Top Rated chart as a Stremio catalog addon.
// It fetches the chart page, extracts (title, IMDb ID) pairs across the known
// page layouts, and turns them into catalog metas.
//
// This package contains domain types, pure domain functions and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package toplist
