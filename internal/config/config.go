package config

// Config holds the service settings, from CLI flags and the config
// file. The file only needs to carry the location details; everything
// else has a flag default.
type Config struct {
	Host                 string     `json:"host,omitempty" mapstructure:"host"`
	Port                 int        `json:"port,omitempty" mapstructure:"port"`
	Debug                bool       `json:"debug,omitempty" mapstructure:"debug"`
	ConfigFile           string     `json:"configFile,omitempty" mapstructure:"configFile"`
	UseCache             bool       `json:"useCache,omitempty" mapstructure:"useCache"`
	CacheLocation        string     `json:"cacheLocation,omitempty" mapstructure:"cacheLocation"`
	CachePollingInterval int        `json:"cachePollingInterval,omitempty" mapstructure:"cachePollingInterval"`
	CacheMaxBytes        int64      `json:"cacheMaxBytes,omitempty" mapstructure:"cacheMaxBytes"`
	LocationDetails      []Location `json:"locationDetails,omitempty" mapstructure:"locationDetails"`
}

// Location names one place color tables live: a local directory or a
// minio bucket.
type Location struct {
	LocationName   string `json:"locationName" mapstructure:"locationName"`
	LocationType   string `json:"locationType" mapstructure:"locationType"`
	Path           string `json:"path,omitempty" mapstructure:"path"`
	MinioBucket    string `json:"minioBucket,omitempty" mapstructure:"minioBucket"`
	Location       string `json:"location,omitempty" mapstructure:"location"`
	MinioAccessKey string `json:"minioAccessKey,omitempty" mapstructure:"minioAccessKey"`
	MinioSecretKey string `json:"minioSecretKey,omitempty" mapstructure:"minioSecretKey"`
	MinioUseSSL    bool   `json:"minioUseSSL,omitempty" mapstructure:"minioUseSSL"`
}
