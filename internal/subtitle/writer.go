package subtitle

import (
	"errors"
	"fmt"
	"time"
)

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// rejects nodes that start before zero or end before they start
func validateTiming(doc *Document, format Format) error {
	for i, node := range doc.Nodes {
		if node.Start < 0 {
			return &EncodeError{
				Format: format,
				Node:   i,
				Err:    errors.New("negative start time"),
			}
		}
		if node.End < node.Start {
			return &EncodeError{
				Format: format,
				Node:   i,
				Err: fmt.Errorf(
					"ends at %s before it starts at %s",
					node.End,
					node.Start,
				),
			}
		}
	}
	return nil
}
