package tilton

// stdBuiltins holds the native operations available to every Processor
var stdBuiltins = map[string]Builtin{
	"add":       biAdd,
	"and":       biAnd,
	"append":    biAppend,
	"define":    biDefine,
	"defined?":  biDefined,
	"delete":    biDelete,
	"div":       biDiv,
	"dump":      biDump,
	"entityify": biEntityify,
	"eq?":       biEq,
	"eval":      biEval,
	"first":     biFirst,
	"ge?":       biGe,
	"gensym":    biGensym,
	"get":       biGet,
	"gt?":       biGt,
	"include":   biInclude,
	"last":      biLast,
	"le?":       biLe,
	"length":    biLength,
	"literal":   biLiteral,
	"loop":      biLoop,
	"lt?":       biLt,
	"mod":       biMod,
	"mult":      biMult,
	"mute":      biMute,
	"ne?":       biNe,
	"null":      biNull,
	"number?":   biNumber,
	"or":        biOr,
	"print":     biPrint,
	"read":      biRead,
	"rep":       biRep,
	"set":       biSet,
	"slashify":  biSlashify,
	"stop":      biStop,
	"sub":       biSub,
	"substr":    biSubstr,
	"trim":      biTrim,
	"unicode":   biUnicode,
	"write":     biWrite,
}
