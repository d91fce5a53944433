package generator

type Config struct {
	Points int    `envconfig:"QT_GENERATOR_POINTS" default:"100"`
	Seed   uint32 `envconfig:"QT_GENERATOR_SEED" default:"0"`
}
