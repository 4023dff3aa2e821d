package i18n

// zhMessages contains Chinese translations
var zhMessages = map[string]string{
	// Parser errors
	ErrExpectedToken: "第 %d 行第 %d 列: 期望 %s, 实际为 %s %q",
	ErrExpectedOneOf: "第 %d 行第 %d 列: 期望 %s 之一, 实际为 %s %q",

	// Semantic errors
	ErrSemantic:          "第 %d 行第 %d 列: %s",
	ErrMainNotFound:      "未找到 main 函数",
	ErrMainHasParams:     "main 函数不能接收参数",
	ErrDuplicateFunction: "函数重复定义: %s",
	ErrDuplicateVariable: "变量重复定义: %s",
	ErrUndeclaredVar:     "未声明的变量: %s",
	ErrUndeclaredFunc:    "调用了未声明的函数: %s",
	ErrArityMismatch:     "函数 %s 需要 %d 个参数, 实际传入 %d 个",
	ErrBreakOutsideLoop:  "break 不在 while 循环内",
	ErrIntegerOverflow:   "整数 %s 超出 32 位范围",
	WarnNoReturnValue:    "使用了 %s 的返回值, 但该函数没有 return 语句",

	// CLI usage
	MsgUsage: `Wyvern - 将 Wyvern 编译为 CIL 汇编的编译器

用法:
  wyvern <命令> [参数]

`,
	MsgCommands:       "命令:",
	MsgCmdBuild:       "将 .wyv 文件或目录编译为 .il 文件",
	MsgCmdRun:         "编译、汇编并执行 .wyv 文件",
	MsgCmdCheck:       "检查 .wyv 文件的语法和语义错误",
	MsgCmdTokens:      "输出 .wyv 文件的 token 序列",
	MsgCmdVersion:     "显示版本信息",
	MsgCmdHelp:        "显示帮助信息",
	MsgUseHelp:        "使用 \"wyvern help <命令>\" 查看命令的详细信息。",
	MsgUnknownCommand: "未知命令: %s",

	// Build command
	MsgBuildUsage:       "用法: wyvern build [选项] <file.wyv|目录>",
	MsgBuildDescription: "将 Wyvern 源文件编译为 CIL 汇编文件。",
	MsgBuildOptOutput:   "输出目录 (默认取自 wyvern.toml)",
	MsgBuildCompleted:   "构建完成: %d 个文件已写入 %s",

	// Run command
	MsgRunUsage:       "用法: wyvern run [选项] <file.wyv>",
	MsgRunDescription: "编译 Wyvern 程序, 汇编后在虚拟机上运行。",

	// Check command
	MsgCheckUsage:       "用法: wyvern check [选项] <file.wyv>",
	MsgCheckDescription: "只运行前端, 报告第一个错误。",
	MsgSyntaxOK:         "语法正确。",
	MsgSemanticsOK:      "语义正确。",

	// Tokens command
	MsgTokensUsage:       "用法: wyvern tokens <file.wyv>",
	MsgTokensDescription: "输出每个 token 及其类别和位置。",
	MsgTokensFrom:        "===== %q 的 token =====",

	// Shared options
	MsgOptVerbose: "显示详细输出",
	MsgOptConfig:  "wyvern.toml 路径 (默认从输入所在目录向上查找)",

	// Common errors
	ErrInputRequired:     "错误: 需要指定输入文件或目录",
	ErrCannotAccessInput: "错误: 无法访问输入: %v",
	ErrCannotLoadConfig:  "错误: 无法加载配置: %v",
	ErrCannotReadFile:    "错误: 无法读取文件 %s: %v",
	ErrCompileError:      "%s: %v",
	ErrNoSourceFiles:     "错误: 在 %s 中未找到 .wyv 文件",
	ErrCannotCreateDir:   "错误: 无法创建目录 %s: %v",
	ErrCannotWriteFile:   "错误: 无法写入文件 %s: %v",
	ErrCannotOpenLog:     "错误: 无法打开日志文件 %s: %v",
	ErrToolFailed:        "错误: %s 执行失败: %v",
	ErrRunSingleFile:     "错误: run 只接受单个 .wyv 文件",

	// Info messages
	MsgUsingConfig: "使用配置: %s",
	MsgCompiling:   "编译: %s -> %s",
	MsgAssembling:  "使用 %s 汇编: %s",
	MsgRunning:     "使用 %s 运行: %s",
}
