package output

type Config struct {
	OutFile string `envconfig:"KNN_OUT_FILE" toml:"out_file"`
}
