package iocache

import (
	"fmt"

	"github.com/ossmetrics/pulse/schema"
)

// PrintStoreStatus prints series store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Series: %d\n", status.TotalSeries)
	fmt.Printf("Total Projects: %d\n", status.TotalProjects)
	if status.TotalSeries > 0 {
		fmt.Printf("Last Update: %s\n", status.LastUpdateTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Update: %s\n", status.OldestUpdate.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Payload Size: %d bytes\n", status.TableSizeBytes)
}
