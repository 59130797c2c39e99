package cli

// GlobalFlags holds flags available with or without a subcommand.
type GlobalFlags struct {
	Kill      bool     `short:"k" long:"kill" description:"Terminate running browsers before reading their history"`
	Yes       bool     `short:"y" long:"yes" description:"Do not ask before terminating browsers"`
	Config    string   `long:"config" description:"Path to config file (.yaml or .toml)" default:""`
	OutputDir string   `short:"o" long:"output-dir" description:"Directory the CSV reports are written to"`
	Browser   []string `short:"b" long:"browser" description:"Only extract this browser ID (repeatable)"`
	UTC       bool     `long:"utc" description:"Render timestamps in UTC instead of local time"`
	Verbose   bool     `short:"v" long:"verbose" description:"Enable debug logging"`
	Version   bool     `long:"version" description:"Show version and exit"`
}

// ExtractCommand extracts history from every installed browser. It also
// runs when no subcommand is given.
type ExtractCommand struct {
	globals *GlobalFlags
	version string
}

// SourcesCommand lists the history sources known for this platform.
type SourcesCommand struct {
	globals *GlobalFlags
	version string
}
