package store

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/uli/schema"
)

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Identities: %d\n", status.Identities)
	_, _ = fmt.Fprintf(w, "Total Reflections: %d\n", status.TotalReflections)
	_, _ = fmt.Fprintf(w, "Total History Points: %d\n", status.TotalHistory)
	if status.TotalHistory > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
