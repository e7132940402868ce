package database

type Config struct {
	// empty disables the run archive
	FileName string `envconfig:"KNN_ARCHIVE_FILE" toml:"archive_file"`
}

func (c *Config) Enabled() bool {
	return c.FileName != ""
}
