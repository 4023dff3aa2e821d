package symbol

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Tag 全局变量的类型标记。变量只由声明产生，标记总是 IDENTIFIER。
type Tag int

const TagIdentifier Tag = 0

var tagNames = [...]string{
	TagIdentifier: "IDENTIFIER",
}

func (t Tag) String() string {
	if int(t) >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "UNKNOWN"
}

const tableRule = "===================="

// GlobalTable 全局变量表：变量名 -> 类型标记
type GlobalTable struct {
	entries map[string]Tag
}

// NewGlobalTable 创建空的全局变量表
func NewGlobalTable() *GlobalTable {
	return &GlobalTable{entries: make(map[string]Tag)}
}

// Define 登记全局变量，名字已存在时返回 false
func (t *GlobalTable) Define(name string, tag Tag) bool {
	if _, ok := t.entries[name]; ok {
		return false
	}
	t.entries[name] = tag
	return true
}

// Contains 检查变量是否已登记
func (t *GlobalTable) Contains(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Lookup 查找变量的类型标记
func (t *GlobalTable) Lookup(name string) (Tag, bool) {
	tag, ok := t.entries[name]
	return tag, ok
}

// Names 返回按名字排序的变量列表
func (t *GlobalTable) Names() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// Len 返回变量数量
func (t *GlobalTable) Len() int {
	return len(t.entries)
}

func (t *GlobalTable) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Table\n")
	sb.WriteString(tableRule + "\n")
	for _, name := range t.Names() {
		fmt.Fprintf(&sb, "%s: %s\n", name, t.entries[name])
	}
	sb.WriteString(tableRule + "\n")
	return sb.String()
}

// FunctionRecord 函数记录。内置函数没有局部变量表。
type FunctionRecord struct {
	Name       string
	Arity      int
	Predefined bool
	// ReturnsValue 为 true 表示调用结果携带有意义的值
	ReturnsValue bool

	locals map[string]bool // 名字 -> 是否为参数
	order  []string
}

// Define 登记参数或局部变量，名字已存在时返回 false
func (r *FunctionRecord) Define(name string, isParam bool) bool {
	if r.locals == nil {
		panic(fmt.Sprintf("symbol: predefined function %s has no local table", r.Name))
	}
	if _, ok := r.locals[name]; ok {
		return false
	}
	r.locals[name] = isParam
	r.order = append(r.order, name)
	return true
}

// Contains 检查名字是否在局部变量表中
func (r *FunctionRecord) Contains(name string) bool {
	_, ok := r.locals[name]
	return ok
}

// IsParam 返回名字是否为参数；ok 为 false 表示不在局部变量表中
func (r *FunctionRecord) IsParam(name string) (isParam, ok bool) {
	isParam, ok = r.locals[name]
	return
}

// Params 按声明顺序返回参数名
func (r *FunctionRecord) Params() []string {
	return r.filter(true)
}

// Locals 按声明顺序返回非参数的局部变量名
func (r *FunctionRecord) Locals() []string {
	return r.filter(false)
}

func (r *FunctionRecord) filter(params bool) []string {
	var names []string
	for _, name := range r.order {
		if r.locals[name] == params {
			names = append(names, name)
		}
	}
	return names
}

func (r *FunctionRecord) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d, %t, ", r.Arity, r.Predefined)
	if r.locals == nil {
		sb.WriteString("null")
		return sb.String()
	}
	sb.WriteString("\n\t------------\n")
	for _, name := range r.order {
		fmt.Fprintf(&sb, "\t  %s, %t\n", name, r.locals[name])
	}
	sb.WriteString("\t------------")
	return sb.String()
}

// Builtin 运行时库提供的内置函数
type Builtin struct {
	Name         string
	Arity        int
	ReturnsValue bool
}

// Builtins 内置函数及其参数个数。ReturnsValue 标记结果携带数据的调用。
var Builtins = []Builtin{
	{Name: "printi", Arity: 1},
	{Name: "printc", Arity: 1},
	{Name: "prints", Arity: 1},
	{Name: "println", Arity: 0},
	{Name: "readi", Arity: 0, ReturnsValue: true},
	{Name: "reads", Arity: 0, ReturnsValue: true},
	{Name: "new", Arity: 1, ReturnsValue: true},
	{Name: "size", Arity: 1, ReturnsValue: true},
	{Name: "add", Arity: 2},
	{Name: "get", Arity: 2, ReturnsValue: true},
	{Name: "set", Arity: 3},
}

// FunctionTable 函数表：函数名 -> 函数记录
type FunctionTable struct {
	records map[string]*FunctionRecord
}

// NewFunctionTable 创建函数表并预先登记全部内置函数
func NewFunctionTable() *FunctionTable {
	t := &FunctionTable{records: make(map[string]*FunctionRecord)}
	for _, b := range Builtins {
		t.records[b.Name] = &FunctionRecord{
			Name:         b.Name,
			Arity:        b.Arity,
			Predefined:   true,
			ReturnsValue: b.ReturnsValue,
		}
	}
	return t
}

// Define 登记用户函数，名字已存在时返回 nil 和 false
func (t *FunctionTable) Define(name string, arity int) (*FunctionRecord, bool) {
	if _, ok := t.records[name]; ok {
		return nil, false
	}
	record := &FunctionRecord{
		Name:   name,
		Arity:  arity,
		locals: make(map[string]bool),
	}
	t.records[name] = record
	return record, true
}

// Lookup 查找函数记录
func (t *FunctionTable) Lookup(name string) (*FunctionRecord, bool) {
	record, ok := t.records[name]
	return record, ok
}

// Contains 检查函数是否已登记
func (t *FunctionTable) Contains(name string) bool {
	_, ok := t.records[name]
	return ok
}

// Names 返回按名字排序的函数列表
func (t *FunctionTable) Names() []string {
	return slices.Sorted(maps.Keys(t.records))
}

// UserFunctions 返回按名字排序的用户函数
func (t *FunctionTable) UserFunctions() []*FunctionRecord {
	var records []*FunctionRecord
	for _, name := range t.Names() {
		if r := t.records[name]; !r.Predefined {
			records = append(records, r)
		}
	}
	return records
}

func (t *FunctionTable) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Table\n")
	sb.WriteString(tableRule + "\n")
	for _, name := range t.Names() {
		fmt.Fprintf(&sb, "%s: %s\n", name, t.records[name])
	}
	sb.WriteString(tableRule + "\n")
	return sb.String()
}
