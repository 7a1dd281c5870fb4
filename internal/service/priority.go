package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority is the task priority ordinal. Zero means no priority.
type Priority int

// Priority ordinals as used by the product.
const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// PriorityLabels lists the labels of all priorities, lowest first.
var PriorityLabels = []string{"Low", "Medium", "High", "Critical"}

// String returns the label, or "" for PriorityNone and unknown ordinals.
func (p Priority) String() string {
	if p < PriorityLow || p > PriorityCritical {
		return ""
	}
	return PriorityLabels[p-1]
}

// ParsePriority accepts an ordinal ("3") or a label ("high", case-insensitive).
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityNone, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		p := Priority(n)
		if p != PriorityNone && p.String() == "" {
			return PriorityNone, fmt.Errorf("invalid priority: %s", s)
		}
		return p, nil
	}
	for i, label := range PriorityLabels {
		if strings.EqualFold(label, s) {
			return Priority(i + 1), nil
		}
	}
	return PriorityNone, fmt.Errorf("invalid priority: %s", s)
}
