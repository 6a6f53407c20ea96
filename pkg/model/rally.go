package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Team struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
}

type Car struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Speed           decimal.Decimal `json:"speed"`           // distance units per hour
	PitStopInterval decimal.Decimal `json:"pitStopInterval"` // distance between pit stops
	PitStopDuration decimal.Decimal `json:"pitStopDuration"` // seconds per stop
	TeamID          int             `json:"teamId"`
}

type RaceEvent struct {
	ID        int             `json:"id"`
	Distance  decimal.Decimal `json:"distance"`
	StartedAt time.Time       `json:"startedAt"`
}

type RaceEntry struct {
	RaceID    int             `json:"raceId"`
	TeamID    int             `json:"teamId"`
	CarID     int             `json:"carId"`
	TimeTaken decimal.Decimal `json:"timeTaken"` // seconds
	Fee       decimal.Decimal `json:"fee"`
}

type RaceResult struct {
	RaceID     int             `json:"raceId"`
	TeamID     int             `json:"teamId"`
	CarID      int             `json:"carId"`
	Position   int             `json:"position"`
	PrizeMoney decimal.Decimal `json:"prizeMoney"`
}

// EligibleCar is the joined car/team row the race engine works on.
// Budget reflects the team budget at the instant of the eligibility check.
type EligibleCar struct {
	CarID           int
	CarName         string
	Speed           decimal.Decimal
	PitStopInterval decimal.Decimal
	PitStopDuration decimal.Decimal
	TeamID          int
	TeamName        string
	TeamBudget      decimal.Decimal
}

// CarInfo is the car listing projection (car joined with its team name).
type CarInfo struct {
	Car
	TeamName string `json:"teamName"`
}

// RaceResultInfo is the results projection shown after a race.
type RaceResultInfo struct {
	RaceID     int             `json:"raceId"`
	TeamName   string          `json:"teamName"`
	CarName    string          `json:"carName"`
	TimeTaken  decimal.Decimal `json:"timeTaken"`
	Position   int             `json:"position"`
	PrizeMoney decimal.Decimal `json:"prizeMoney"`
}
