// Package learning accumulates longitudinal household statistics: departure
// timing, missed-safety counters, and learned child routes. Insights are an
// observational side channel; the decision engine writes here but does not
// consult derived risk levels when deciding what to prompt.
package learning

import (
	"math"
	"sync"
	"time"
)

// Risk is a coarse derived level, thresholded on missed-safety counters.
type Risk string

const (
	RiskNormal   Risk = "normal"
	RiskElevated Risk = "elevated"
)

// riskThreshold: counts strictly above this are elevated.
const riskThreshold = 2

// Route summarizes a learned child route.
type Route struct {
	Route string `json:"route"`
	ETA   string `json:"eta"`
}

// Insights is a point-in-time snapshot of derived statistics.
type Insights struct {
	UsualDepartureHour *int             `json:"usualDepartureHour"`
	LockRisk           Risk             `json:"lockRisk"`
	ApplianceRisk      Risk             `json:"applianceRisk"`
	ChildRoutes        map[string]Route `json:"childRoutes"`
}

// Engine holds monotonically accumulating state. Counters never reset; child
// routes overwrite per child.
type Engine struct {
	mu                 sync.Mutex
	departures         []time.Time
	usualDepartureHour *int
	childRoutes        map[string]Route
	missedLockCount    int
	missedApplianceOff int
}

func NewEngine() *Engine {
	return &Engine{childRoutes: make(map[string]Route)}
}

// RecordDeparture appends to the departure history and recomputes the usual
// departure hour as the rounded mean of all recorded departure hours
// (ties round half up).
func (e *Engine) RecordDeparture(ts time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.departures = append(e.departures, ts)
	sum := 0
	for _, d := range e.departures {
		sum += d.Hour()
	}
	hour := int(math.Floor(float64(sum)/float64(len(e.departures)) + 0.5))
	e.usualDepartureHour = &hour
}

func (e *Engine) RecordDoorUnlockedDeparture() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.missedLockCount++
}

func (e *Engine) RecordApplianceLeftOn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.missedApplianceOff++
}

// LearnChildRoute overwrites any prior route entry for the child.
func (e *Engine) LearnChildRoute(childID string, summary Route) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.childRoutes[childID] = summary
}

// Insights produces a snapshot. The returned maps and pointers are copies;
// mutating them does not affect engine state.
func (e *Engine) Insights() Insights {
	e.mu.Lock()
	defer e.mu.Unlock()
	routes := make(map[string]Route, len(e.childRoutes))
	for id, r := range e.childRoutes {
		routes[id] = r
	}
	var hour *int
	if e.usualDepartureHour != nil {
		h := *e.usualDepartureHour
		hour = &h
	}
	return Insights{
		UsualDepartureHour: hour,
		LockRisk:           riskLevel(e.missedLockCount),
		ApplianceRisk:      riskLevel(e.missedApplianceOff),
		ChildRoutes:        routes,
	}
}

func riskLevel(count int) Risk {
	if count > riskThreshold {
		return RiskElevated
	}
	return RiskNormal
}
