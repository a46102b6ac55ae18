// internal/catalog/data.go
package catalog

import "github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"

// Default returns the built-in North America map: 18 cities, 30 routes
// (one double pair, several neutral gray routes), the standard 110-card
// train deck, and 14 destination tickets.
func Default() *Catalog {
	return &Catalog{
		Cities:  defaultCities,
		Routes:  defaultRoutes,
		Cards:   defaultCards,
		Tickets: defaultTickets,
	}
}

var defaultCities = []models.City{
	{ID: "seattle", Name: "Seattle", X: 8, Y: 10, Region: "west"},
	{ID: "portland", Name: "Portland", X: 6, Y: 16, Region: "west"},
	{ID: "san_francisco", Name: "San Francisco", X: 4, Y: 38, Region: "west"},
	{ID: "los_angeles", Name: "Los Angeles", X: 9, Y: 48, Region: "west"},
	{ID: "salt_lake_city", Name: "Salt Lake City", X: 22, Y: 32, Region: "west"},
	{ID: "phoenix", Name: "Phoenix", X: 20, Y: 52, Region: "southwest"},
	{ID: "denver", Name: "Denver", X: 33, Y: 36, Region: "central"},
	{ID: "santa_fe", Name: "Santa Fe", X: 31, Y: 48, Region: "southwest"},
	{ID: "helena", Name: "Helena", X: 26, Y: 16, Region: "central"},
	{ID: "omaha", Name: "Omaha", X: 46, Y: 32, Region: "central"},
	{ID: "kansas_city", Name: "Kansas City", X: 48, Y: 38, Region: "central"},
	{ID: "dallas", Name: "Dallas", X: 46, Y: 56, Region: "south"},
	{ID: "chicago", Name: "Chicago", X: 58, Y: 28, Region: "midwest"},
	{ID: "saint_louis", Name: "Saint Louis", X: 56, Y: 38, Region: "midwest"},
	{ID: "new_orleans", Name: "New Orleans", X: 58, Y: 62, Region: "south"},
	{ID: "atlanta", Name: "Atlanta", X: 70, Y: 52, Region: "southeast"},
	{ID: "washington", Name: "Washington", X: 82, Y: 38, Region: "east"},
	{ID: "new_york", Name: "New York", X: 85, Y: 28, Region: "east"},
}

var defaultRoutes = []RouteDef{
	{ID: "seattle-portland", FromCityID: "seattle", ToCityID: "portland", Length: 1, Color: models.ColorGray},
	{ID: "seattle-helena", FromCityID: "seattle", ToCityID: "helena", Length: 6, Color: models.ColorYellow},
	{ID: "portland-san_francisco", FromCityID: "portland", ToCityID: "san_francisco", Length: 5, Color: models.ColorGreen},
	{ID: "portland-salt_lake_city", FromCityID: "portland", ToCityID: "salt_lake_city", Length: 6, Color: models.ColorBlue},
	{ID: "san_francisco-salt_lake_city", FromCityID: "san_francisco", ToCityID: "salt_lake_city", Length: 5, Color: models.ColorOrange},
	{ID: "san_francisco-los_angeles-1", FromCityID: "san_francisco", ToCityID: "los_angeles", Length: 3, Color: models.ColorYellow,
		IsDoubleRoute: true, DoubleRouteID: "san_francisco-los_angeles-2"},
	{ID: "san_francisco-los_angeles-2", FromCityID: "san_francisco", ToCityID: "los_angeles", Length: 3, Color: models.ColorPink,
		IsDoubleRoute: true, DoubleRouteID: "san_francisco-los_angeles-1"},
	{ID: "los_angeles-phoenix", FromCityID: "los_angeles", ToCityID: "phoenix", Length: 3, Color: models.ColorGray},
	{ID: "los_angeles-salt_lake_city", FromCityID: "los_angeles", ToCityID: "salt_lake_city", Length: 5, Color: models.ColorPink},
	{ID: "phoenix-santa_fe", FromCityID: "phoenix", ToCityID: "santa_fe", Length: 3, Color: models.ColorGray},
	{ID: "phoenix-denver", FromCityID: "phoenix", ToCityID: "denver", Length: 5, Color: models.ColorWhite},
	{ID: "salt_lake_city-denver", FromCityID: "salt_lake_city", ToCityID: "denver", Length: 3, Color: models.ColorRed},
	{ID: "salt_lake_city-helena", FromCityID: "salt_lake_city", ToCityID: "helena", Length: 3, Color: models.ColorPink},
	{ID: "helena-denver", FromCityID: "helena", ToCityID: "denver", Length: 4, Color: models.ColorGreen},
	{ID: "helena-omaha", FromCityID: "helena", ToCityID: "omaha", Length: 5, Color: models.ColorRed},
	{ID: "denver-santa_fe", FromCityID: "denver", ToCityID: "santa_fe", Length: 2, Color: models.ColorGray},
	{ID: "denver-kansas_city", FromCityID: "denver", ToCityID: "kansas_city", Length: 4, Color: models.ColorBlack},
	{ID: "denver-omaha", FromCityID: "denver", ToCityID: "omaha", Length: 4, Color: models.ColorPink},
	{ID: "santa_fe-dallas", FromCityID: "santa_fe", ToCityID: "dallas", Length: 4, Color: models.ColorGray},
	{ID: "omaha-chicago", FromCityID: "omaha", ToCityID: "chicago", Length: 4, Color: models.ColorBlue},
	{ID: "omaha-kansas_city", FromCityID: "omaha", ToCityID: "kansas_city", Length: 1, Color: models.ColorGray},
	{ID: "kansas_city-saint_louis", FromCityID: "kansas_city", ToCityID: "saint_louis", Length: 2, Color: models.ColorBlue},
	{ID: "kansas_city-dallas", FromCityID: "kansas_city", ToCityID: "dallas", Length: 3, Color: models.ColorRed},
	{ID: "dallas-new_orleans", FromCityID: "dallas", ToCityID: "new_orleans", Length: 3, Color: models.ColorGreen},
	{ID: "chicago-saint_louis", FromCityID: "chicago", ToCityID: "saint_louis", Length: 2, Color: models.ColorGreen},
	{ID: "chicago-new_york", FromCityID: "chicago", ToCityID: "new_york", Length: 6, Color: models.ColorWhite},
	{ID: "saint_louis-atlanta", FromCityID: "saint_louis", ToCityID: "atlanta", Length: 4, Color: models.ColorYellow},
	{ID: "new_orleans-atlanta", FromCityID: "new_orleans", ToCityID: "atlanta", Length: 4, Color: models.ColorOrange},
	{ID: "atlanta-washington", FromCityID: "atlanta", ToCityID: "washington", Length: 3, Color: models.ColorGray},
	{ID: "washington-new_york", FromCityID: "washington", ToCityID: "new_york", Length: 2, Color: models.ColorOrange},
}

// Standard composition: 12 cards of each of the eight colors plus 14
// locomotives, 110 cards total.
var defaultCards = []CardDef{
	{Color: models.ColorRed, Count: 12},
	{Color: models.ColorBlue, Count: 12},
	{Color: models.ColorGreen, Count: 12},
	{Color: models.ColorYellow, Count: 12},
	{Color: models.ColorOrange, Count: 12},
	{Color: models.ColorPink, Count: 12},
	{Color: models.ColorWhite, Count: 12},
	{Color: models.ColorBlack, Count: 12},
	{Color: models.ColorWild, Count: 14, IsLocomotive: true},
}

var defaultTickets = []TicketDef{
	{FromCityID: "seattle", ToCityID: "new_york", Points: 22, Penalty: 22},
	{FromCityID: "los_angeles", ToCityID: "chicago", Points: 16, Penalty: 16},
	{FromCityID: "los_angeles", ToCityID: "new_york", Points: 21, Penalty: 21},
	{FromCityID: "portland", ToCityID: "phoenix", Points: 11, Penalty: 11},
	{FromCityID: "san_francisco", ToCityID: "atlanta", Points: 17, Penalty: 17},
	{FromCityID: "helena", ToCityID: "dallas", Points: 9, Penalty: 9},
	{FromCityID: "denver", ToCityID: "new_orleans", Points: 10, Penalty: 10},
	{FromCityID: "denver", ToCityID: "washington", Points: 13, Penalty: 13},
	{FromCityID: "chicago", ToCityID: "atlanta", Points: 7, Penalty: 7},
	{FromCityID: "chicago", ToCityID: "new_orleans", Points: 8, Penalty: 8},
	{FromCityID: "kansas_city", ToCityID: "washington", Points: 12, Penalty: 12},
	{FromCityID: "seattle", ToCityID: "denver", Points: 10, Penalty: 10},
	{FromCityID: "new_york", ToCityID: "new_orleans", Points: 14, Penalty: 14},
	{FromCityID: "salt_lake_city", ToCityID: "saint_louis", Points: 11, Penalty: 11},
}
