package config

// catalogDTO mirrors the structure of a modkit.yaml catalog file.
type catalogDTO struct {
	Version   string              `yaml:"version"`
	Layers    map[string][]string `yaml:"layers"`
	PatchFile string              `yaml:"patchFile"`
	Records   []recordDTO         `yaml:"records"`
}

type recordDTO struct {
	Name       string     `yaml:"name"`
	Display    string     `yaml:"display"`
	References []string   `yaml:"references"`
	Fields     []fieldDTO `yaml:"fields"`
}

type fieldDTO struct {
	Name      string `yaml:"name"`
	Display   string `yaml:"display"`
	File      string `yaml:"file"`
	Path      string `yaml:"path"`
	Attribute string `yaml:"attribute"`
	ReadOnly  bool   `yaml:"readOnly"`
}
