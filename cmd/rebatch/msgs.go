package rebatch

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Batch select, rename, copy and move files"
	MsgListShort       = "List the files of a directory"
	MsgPlanShort       = "Select files and plan their new names"
	MsgRenameShort     = "Rename selected files in place"
	MsgCopyShort       = "Copy selected files into a directory"
	MsgMoveShort       = "Move selected files into a directory"
	MsgConflictsShort  = "Report destinations that already exist"
	MsgConfigShort     = "Print the default configuration"
	MsgConfigLong      = "Print the default configuration with every value commented out, ready to be edited.\n\nWith --write it is saved as config.toml in the rebatch config directory."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Report what would happen without changing any file"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/rebatch/config.toml)"
	MsgFlagSelect     = "Select files whose name matches a shell pattern (repeatable)"
	MsgFlagAll        = "Select every listed file"
	MsgFlagPlan       = "Apply a saved plan manifest instead of selecting"
	MsgFlagBase       = "Base of the planned names"
	MsgFlagCode       = "Code placed between base and position"
	MsgFlagOnConflict = "Conflict policy: overwrite, copy, skip or ask"
	MsgFlagTo         = "Destination directory (with --plan)"
	MsgFlagOutput     = "Save the plan to a manifest file (.toml, .yaml, .json)"
	MsgFlagFilter     = "Only list files whose base name contains this text"
	MsgFlagSort       = "Sort column: name, target, ext, size, modified, directory, checked"
	MsgFlagDesc       = "Sort in descending order"
	MsgFlagWrite      = "Write the configuration file instead of printing it"

	// Status messages
	MsgConfigWritten = "[success]Configuration written to[/success] [path]%s[/path]"
	MsgVersionFormat = "rebatch %s\n  commit: %s\n  built:  %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/rename-long.txt
	msgRenameLongRaw string
	MsgRenameLong    = strings.TrimSpace(msgRenameLongRaw)

	//go:embed msgs/rename-example.txt
	msgRenameExampleRaw string
	MsgRenameExample    = strings.TrimRight(msgRenameExampleRaw, "\n")

	//go:embed msgs/transfer-long.txt
	msgTransferLongRaw string
	MsgTransferLong    = strings.TrimSpace(msgTransferLongRaw)

	//go:embed msgs/copy-example.txt
	msgCopyExampleRaw string
	MsgCopyExample    = strings.TrimRight(msgCopyExampleRaw, "\n")

	//go:embed msgs/move-example.txt
	msgMoveExampleRaw string
	MsgMoveExample    = strings.TrimRight(msgMoveExampleRaw, "\n")

	//go:embed msgs/conflicts-long.txt
	msgConflictsLongRaw string
	MsgConflictsLong    = strings.TrimSpace(msgConflictsLongRaw)

	//go:embed msgs/conflicts-example.txt
	msgConflictsExampleRaw string
	MsgConflictsExample    = strings.TrimRight(msgConflictsExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
