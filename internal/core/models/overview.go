package models

type OverviewBridgeDetails struct {
	Product    string   `json:"product"`
	Version    string   `json:"version"`
	Platform   string   `json:"platform"`
	GoVersion  string   `json:"go_version"`
	UptimeSecs int64    `json:"uptime_secs"`
	StartTime  string   `json:"start_time"`
	Topics     []string `json:"topics"`
}
