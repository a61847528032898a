package check

// Checker is implemented by every diagnostic check.
//
// Implementations:
//   - settings.Accessor: reads the configuration snapshot
//   - resourceprobe.Check: checks a resource file for read access
//   - core.ProcessConstructor: looks up the core command before it runs
//   - syscheck.Check: reports and verifies the runtime OS and architecture
type Checker interface {
	Run() Result
}
