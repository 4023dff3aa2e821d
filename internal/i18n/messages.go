package i18n

// Message keys for parser errors
const (
	ErrExpectedToken = "parser.expected_token"  // args: line, column, expected, gotCategory, gotLexeme
	ErrExpectedOneOf = "parser.expected_one_of" // args: line, column, expectedList, gotCategory, gotLexeme
)

// Message keys for semantic errors
const (
	ErrSemantic          = "semantic.error" // args: line, column, message
	ErrMainNotFound      = "semantic.main_not_found"
	ErrMainHasParams     = "semantic.main_has_params"
	ErrDuplicateFunction = "semantic.duplicate_function" // args: name
	ErrDuplicateVariable = "semantic.duplicate_variable" // args: name
	ErrUndeclaredVar     = "semantic.undeclared_var"     // args: name
	ErrUndeclaredFunc    = "semantic.undeclared_func"    // args: name
	ErrArityMismatch     = "semantic.arity_mismatch"     // args: name, expected, got
	ErrBreakOutsideLoop  = "semantic.break_outside_loop"
	ErrIntegerOverflow   = "semantic.integer_overflow" // args: literal
	WarnNoReturnValue    = "semantic.no_return_value"  // args: name
)

// Message keys for CLI
const (
	// Usage and help
	MsgUsage          = "cli.usage"
	MsgCommands       = "cli.commands"
	MsgCmdBuild       = "cli.cmd_build"
	MsgCmdRun         = "cli.cmd_run"
	MsgCmdCheck       = "cli.cmd_check"
	MsgCmdTokens      = "cli.cmd_tokens"
	MsgCmdVersion     = "cli.cmd_version"
	MsgCmdHelp        = "cli.cmd_help"
	MsgUseHelp        = "cli.use_help"
	MsgUnknownCommand = "cli.unknown_command" // args: command

	// Build command
	MsgBuildUsage       = "cli.build_usage"
	MsgBuildDescription = "cli.build_description"
	MsgBuildOptOutput   = "cli.build_opt_output"
	MsgBuildCompleted   = "cli.build_completed" // args: count, outputDir

	// Run command
	MsgRunUsage       = "cli.run_usage"
	MsgRunDescription = "cli.run_description"

	// Check command
	MsgCheckUsage       = "cli.check_usage"
	MsgCheckDescription = "cli.check_description"
	MsgSyntaxOK         = "cli.syntax_ok"
	MsgSemanticsOK      = "cli.semantics_ok"

	// Tokens command
	MsgTokensUsage       = "cli.tokens_usage"
	MsgTokensDescription = "cli.tokens_description"
	MsgTokensFrom        = "cli.tokens_from" // args: path

	// Shared options
	MsgOptVerbose = "cli.opt_verbose"
	MsgOptConfig  = "cli.opt_config"

	// Common errors
	ErrInputRequired     = "cli.input_required"
	ErrCannotAccessInput = "cli.cannot_access_input" // args: error
	ErrCannotLoadConfig  = "cli.cannot_load_config"  // args: error
	ErrCannotReadFile    = "cli.cannot_read_file"    // args: path, error
	ErrCompileError      = "cli.compile_error"       // args: path, error
	ErrNoSourceFiles     = "cli.no_source_files"     // args: dir
	ErrCannotCreateDir   = "cli.cannot_create_dir"   // args: path, error
	ErrCannotWriteFile   = "cli.cannot_write_file"   // args: path, error
	ErrCannotOpenLog     = "cli.cannot_open_log"     // args: path, error
	ErrToolFailed        = "cli.tool_failed"         // args: tool, error
	ErrRunSingleFile     = "cli.run_single_file"

	// Info messages
	MsgUsingConfig = "cli.using_config" // args: configPath
	MsgCompiling   = "cli.compiling"    // args: input, output
	MsgAssembling  = "cli.assembling"   // args: tool, path
	MsgRunning     = "cli.running"      // args: vm, path
)
