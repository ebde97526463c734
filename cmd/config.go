package cmd

type Config struct {
	HTTPPort        string
	OrderBackendURL string
	PrintServiceURL string
	RedisAddr       string
	RedisPassword   string
	RedisPrefix     string
	RestaurantID    string
	RestaurantName  string
	LocationID      string
	LocationName    string
	PrinterID       string
	PrinterName     string
	StationID       string
	StationName     string
	StationTags     []string

	// BroadcastOnWriteFailure keeps the legacy behavior of announcing a status
	// change even when the backend rejected the write. Off by default.
	BroadcastOnWriteFailure bool
}
