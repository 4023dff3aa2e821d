package i18n

// enMessages contains English translations
var enMessages = map[string]string{
	// Parser errors
	ErrExpectedToken: "line %d:%d: expected %s, got %s %q",
	ErrExpectedOneOf: "line %d:%d: expected one of %s, got %s %q",

	// Semantic errors
	ErrSemantic:          "line %d:%d: %s",
	ErrMainNotFound:      "function main was not found",
	ErrMainHasParams:     "function main does not expect to receive parameters",
	ErrDuplicateFunction: "duplicated function: %s",
	ErrDuplicateVariable: "duplicated variable: %s",
	ErrUndeclaredVar:     "undeclared variable: %s",
	ErrUndeclaredFunc:    "function call to undeclared function: %s",
	ErrArityMismatch:     "function %s expects %d argument(s), got %d",
	ErrBreakOutsideLoop:  "break not in while loop",
	ErrIntegerOverflow:   "integer %s exceeds 32 bits",
	WarnNoReturnValue:    "value of %s is used but the function never returns one",

	// CLI usage
	MsgUsage: `Wyvern - a compiler from Wyvern to CIL assembly

Usage:
  wyvern <command> [arguments]

`,
	MsgCommands:       "Commands:",
	MsgCmdBuild:       "Compile a .wyv file or directory into .il files",
	MsgCmdRun:         "Compile, assemble and execute a .wyv file",
	MsgCmdCheck:       "Check a .wyv file for syntax and semantic errors",
	MsgCmdTokens:      "Print the token stream of a .wyv file",
	MsgCmdVersion:     "Print version information",
	MsgCmdHelp:        "Show this help message",
	MsgUseHelp:        "Use \"wyvern help <command>\" for more information about a command.",
	MsgUnknownCommand: "Unknown command: %s",

	// Build command
	MsgBuildUsage:       "Usage: wyvern build [options] <file.wyv|directory>",
	MsgBuildDescription: "Compile Wyvern source files into CIL assembly files.",
	MsgBuildOptOutput:   "Output directory (default from wyvern.toml)",
	MsgBuildCompleted:   "Build completed: %d file(s) written to %s",

	// Run command
	MsgRunUsage:       "Usage: wyvern run [options] <file.wyv>",
	MsgRunDescription: "Compile a Wyvern program, assemble it and run it on the virtual machine.",

	// Check command
	MsgCheckUsage:       "Usage: wyvern check [options] <file.wyv>",
	MsgCheckDescription: "Run the front end only and report the first error.",
	MsgSyntaxOK:         "Syntax OK.",
	MsgSemanticsOK:      "Semantics OK.",

	// Tokens command
	MsgTokensUsage:       "Usage: wyvern tokens <file.wyv>",
	MsgTokensDescription: "Print every token with its category and position.",
	MsgTokensFrom:        "===== Tokens from: %q =====",

	// Shared options
	MsgOptVerbose: "Show verbose output",
	MsgOptConfig:  "Path to wyvern.toml (default: search upward from the input)",

	// Common errors
	ErrInputRequired:     "Error: input file or directory is required",
	ErrCannotAccessInput: "Error: cannot access input: %v",
	ErrCannotLoadConfig:  "Error: cannot load config: %v",
	ErrCannotReadFile:    "Error: cannot read file %s: %v",
	ErrCompileError:      "%s: %v",
	ErrNoSourceFiles:     "Error: no .wyv files found in %s",
	ErrCannotCreateDir:   "Error: cannot create directory %s: %v",
	ErrCannotWriteFile:   "Error: cannot write file %s: %v",
	ErrCannotOpenLog:     "Error: cannot open log file %s: %v",
	ErrToolFailed:        "Error: %s failed: %v",
	ErrRunSingleFile:     "Error: run expects a single .wyv file",

	// Info messages
	MsgUsingConfig: "Using config: %s",
	MsgCompiling:   "Compiling: %s -> %s",
	MsgAssembling:  "Assembling with %s: %s",
	MsgRunning:     "Running with %s: %s",
}
