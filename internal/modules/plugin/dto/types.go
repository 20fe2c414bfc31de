package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID          string
	Title       string
	Description string
	Kind        string
	TimeoutMS   int
}

// RunInput runs a plugin command. Report commands ignore InputJSON and
// receive the owner's statistics for Period instead.
type RunInput struct {
	PluginName string
	CommandID  string
	OwnerID    string
	Period     string
	InputJSON  string
}

type RunOutput struct {
	PluginName string
	CommandID  string
	Kind       string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
