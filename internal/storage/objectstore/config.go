package objectstore

// Config holds S3-compatible bucket settings
type Config struct {
	Bucket string
	// Prefix is prepended to every key, e.g. "saves/"
	Prefix string
	Region string
	// Endpoint overrides the AWS endpoint for R2, MinIO and friends
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// DefaultConfig returns defaults suitable for a local MinIO
func DefaultConfig() Config {
	return Config{
		Prefix: "protocasual/",
		Region: "auto",
	}
}
