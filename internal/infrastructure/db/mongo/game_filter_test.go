package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retroportal/games-api/internal/core/ports"
)

func TestBuildGameFilter_Empty(t *testing.T) {
	filter := buildGameFilter(ports.ListGamesFilter{Page: 1, Limit: 12})
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildGameFilter_Conjunctive(t *testing.T) {
	multiplayer := true
	filter := buildGameFilter(ports.ListGamesFilter{
		Search:      "mario",
		Genre:       "Platformer",
		YearFrom:    1985,
		YearTo:      1990,
		Multiplayer: &multiplayer,
	})

	if len(filter) != 4 {
		t.Fatalf("expected 4 clauses, got %d: %v", len(filter), filter)
	}

	re, ok := filter["name"].(primitive.Regex)
	if !ok || re.Options != "i" {
		t.Fatalf("expected case-insensitive name regex, got %v", filter["name"])
	}
	if filter["genre"] != "Platformer" {
		t.Fatalf("unexpected genre clause: %v", filter["genre"])
	}
	if filter["has_multiplayer"] != true {
		t.Fatalf("unexpected multiplayer clause: %v", filter["has_multiplayer"])
	}

	bounds, ok := filter["release_date"].(bson.M)
	if !ok {
		t.Fatalf("expected release_date bounds, got %v", filter["release_date"])
	}
	gte := bounds["$gte"].(time.Time)
	lt := bounds["$lt"].(time.Time)
	if gte.Year() != 1985 || gte.Month() != time.January || gte.Day() != 1 {
		t.Fatalf("unexpected lower bound: %v", gte)
	}
	// Upper bound is exclusive on the first day of the following year so the
	// whole of yearTo is included.
	if lt.Year() != 1991 || lt.Month() != time.January || lt.Day() != 1 {
		t.Fatalf("unexpected upper bound: %v", lt)
	}
}

func TestBuildGameFilter_SearchIsEscaped(t *testing.T) {
	filter := buildGameFilter(ports.ListGamesFilter{Search: "mario (nes)"})

	re := filter["name"].(primitive.Regex)
	if re.Pattern == "mario (nes)" {
		t.Fatal("regex metacharacters must be escaped")
	}
}

func TestBuildGameFilter_OpenEndedYearRange(t *testing.T) {
	filter := buildGameFilter(ports.ListGamesFilter{YearFrom: 1980})

	bounds := filter["release_date"].(bson.M)
	if _, ok := bounds["$lt"]; ok {
		t.Fatal("yearTo absent but upper bound present")
	}
	if _, ok := bounds["$gte"]; !ok {
		t.Fatal("missing lower bound")
	}
}

func TestBuildGameFilter_MultiplayerFalse(t *testing.T) {
	multiplayer := false
	filter := buildGameFilter(ports.ListGamesFilter{Multiplayer: &multiplayer})

	// "false" is a real constraint, not an absent parameter.
	if filter["has_multiplayer"] != false {
		t.Fatalf("expected has_multiplayer=false clause, got %v", filter)
	}
}
