package game

import "fmt"

// CardType is the reinforcement card class printed on a territory's card.
type CardType string

const (
	Infantry  CardType = "infantry"
	Cavalry   CardType = "cavalry"
	Artillery CardType = "artillery"
)

// Territory is one of the 42 fixed regions on the board.
type Territory struct {
	Name      string
	Continent string
	Card      CardType
	Adjacent  []string
}

// Continent groups territories; owning every territory in a continent
// grants its bonus during deployment.
type Continent struct {
	Name        string
	Territories int
	Bonus       int
}

// Continents indexes the six continents by name.
var Continents = map[string]Continent{
	"africa":        {Name: "africa", Territories: 6, Bonus: 3},
	"asia":          {Name: "asia", Territories: 12, Bonus: 7},
	"europe":        {Name: "europe", Territories: 7, Bonus: 5},
	"north_america": {Name: "north_america", Territories: 9, Bonus: 5},
	"oceana":        {Name: "oceana", Territories: 4, Bonus: 2},
	"south_america": {Name: "south_america", Territories: 4, Bonus: 2},
}

// TerritoryNames lists every territory in authoring order. The order is
// fixed: the draft shuffle and route search iterate it, so changing it
// changes replays.
var TerritoryNames = []string{
	"alaska", "northwest_territory", "greenland", "alberta", "ontario",
	"quebec", "western_united_states", "eastern_united_states",
	"central_america",
	"venezuela", "brazil", "peru", "argentina",
	"iceland", "great_britain", "scandinavia", "ukraine", "northern_europe",
	"western_europe", "southern_europe",
	"north_africa", "egypt", "east_africa", "congo", "south_africa",
	"madagascar",
	"ural", "siberia", "yakutsk", "kamchatka", "irkutsk", "mongolia",
	"japan", "afghanistan", "china", "middle_east", "india", "siam",
	"indonesia", "new_guinea", "western_australia", "eastern_australia",
}

var continentData = map[string][]string{
	"north_america": {
		"alaska", "northwest_territory", "greenland", "alberta", "ontario",
		"quebec", "western_united_states", "eastern_united_states",
		"central_america",
	},
	"south_america": {"venezuela", "brazil", "peru", "argentina"},
	"europe": {
		"iceland", "great_britain", "scandinavia", "ukraine",
		"northern_europe", "western_europe", "southern_europe",
	},
	"africa": {
		"north_africa", "egypt", "east_africa", "congo", "south_africa",
		"madagascar",
	},
	"asia": {
		"ural", "siberia", "yakutsk", "kamchatka", "irkutsk", "mongolia",
		"japan", "afghanistan", "china", "middle_east", "india", "siam",
	},
	"oceana": {"indonesia", "new_guinea", "western_australia", "eastern_australia"},
}

// Adjacency data authored per territory. Borders that wrap across the map
// (alaska-kamchatka, greenland-iceland, brazil-north_africa) are listed on
// both sides like every other edge; loadTerritories panics on any
// asymmetry, treating it as an authoring bug.
var adjacencyData = map[string][]string{
	"alaska":                {"northwest_territory", "alberta", "kamchatka"},
	"northwest_territory":   {"alaska", "alberta", "ontario", "greenland"},
	"greenland":             {"northwest_territory", "ontario", "quebec", "iceland"},
	"alberta":               {"alaska", "northwest_territory", "ontario", "western_united_states"},
	"ontario":               {"northwest_territory", "alberta", "greenland", "quebec", "western_united_states", "eastern_united_states"},
	"quebec":                {"ontario", "greenland", "eastern_united_states"},
	"western_united_states": {"alberta", "ontario", "eastern_united_states", "central_america"},
	"eastern_united_states": {"western_united_states", "ontario", "quebec", "central_america"},
	"central_america":       {"western_united_states", "eastern_united_states", "venezuela"},
	"venezuela":             {"central_america", "brazil", "peru"},
	"brazil":                {"venezuela", "peru", "argentina", "north_africa"},
	"peru":                  {"venezuela", "brazil", "argentina"},
	"argentina":             {"peru", "brazil"},
	"iceland":               {"greenland", "great_britain", "scandinavia"},
	"great_britain":         {"iceland", "scandinavia", "northern_europe", "western_europe"},
	"scandinavia":           {"iceland", "great_britain", "northern_europe", "ukraine"},
	"ukraine":               {"scandinavia", "northern_europe", "southern_europe", "ural", "afghanistan", "middle_east"},
	"northern_europe":       {"great_britain", "scandinavia", "ukraine", "southern_europe", "western_europe"},
	"western_europe":        {"great_britain", "northern_europe", "southern_europe", "north_africa"},
	"southern_europe":       {"western_europe", "northern_europe", "ukraine", "middle_east", "egypt", "north_africa"},
	"north_africa":          {"western_europe", "southern_europe", "egypt", "east_africa", "congo", "brazil"},
	"egypt":                 {"southern_europe", "north_africa", "east_africa", "middle_east"},
	"east_africa":           {"egypt", "north_africa", "congo", "south_africa", "madagascar", "middle_east"},
	"congo":                 {"north_africa", "east_africa", "south_africa"},
	"south_africa":          {"congo", "east_africa", "madagascar"},
	"madagascar":            {"east_africa", "south_africa"},
	"ural":                  {"ukraine", "siberia", "china", "afghanistan"},
	"siberia":               {"ural", "yakutsk", "irkutsk", "mongolia", "china"},
	"yakutsk":               {"siberia", "kamchatka", "irkutsk"},
	"kamchatka":             {"yakutsk", "irkutsk", "mongolia", "japan", "alaska"},
	"irkutsk":               {"siberia", "yakutsk", "kamchatka", "mongolia"},
	"mongolia":              {"siberia", "irkutsk", "kamchatka", "japan", "china"},
	"japan":                 {"kamchatka", "mongolia"},
	"afghanistan":           {"ukraine", "ural", "china", "india", "middle_east"},
	"china":                 {"ural", "siberia", "mongolia", "afghanistan", "india", "siam"},
	"middle_east":           {"ukraine", "southern_europe", "egypt", "east_africa", "afghanistan", "india"},
	"india":                 {"middle_east", "afghanistan", "china", "siam"},
	"siam":                  {"india", "china", "indonesia"},
	"indonesia":             {"siam", "new_guinea", "western_australia"},
	"new_guinea":            {"indonesia", "western_australia", "eastern_australia"},
	"western_australia":     {"indonesia", "new_guinea", "eastern_australia"},
	"eastern_australia":     {"new_guinea", "western_australia"},
}

// Territories indexes the static board by territory name.
var Territories = loadTerritories()

func loadTerritories() map[string]*Territory {
	continentOf := make(map[string]string, len(TerritoryNames))
	for continent, names := range continentData {
		for _, name := range names {
			continentOf[name] = continent
		}
	}

	cardTypes := []CardType{Infantry, Cavalry, Artillery}
	territories := make(map[string]*Territory, len(TerritoryNames))
	for i, name := range TerritoryNames {
		continent, ok := continentOf[name]
		if !ok {
			panic(fmt.Sprintf("territory %s is not assigned to a continent", name))
		}
		territories[name] = &Territory{
			Name:      name,
			Continent: continent,
			Card:      cardTypes[i%3],
			Adjacent:  adjacencyData[name],
		}
	}

	// Adjacency must be mutual; anything else is a data-authoring bug.
	for name, territory := range territories {
		for _, neighbor := range territory.Adjacent {
			other, ok := territories[neighbor]
			if !ok {
				panic(fmt.Sprintf("%s borders unknown territory %s", name, neighbor))
			}
			if !containsString(other.Adjacent, name) {
				panic(fmt.Sprintf("%s borders %s but not the reverse", name, neighbor))
			}
		}
	}

	return territories
}

// AreAdjacent reports whether two territories share a border.
func AreAdjacent(from, to string) bool {
	territory, ok := Territories[from]
	if !ok {
		return false
	}
	return containsString(territory.Adjacent, to)
}

func containsString(slice []string, item string) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
