package tools

import (
	"sort"
	"sync"
)

// Registry manages the available tools.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	groups map[string][]string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		groups: make(map[string][]string),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
	if tool.Group != "" {
		r.groups[tool.Group] = append(r.groups[tool.Group], tool.Name)
	}
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Names returns all registered tool names sorted.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, tool := range all {
		names[i] = tool.Name
	}
	return names
}

// DefaultRegistry builds the registry with every Attio tool wired to deps.
func DefaultRegistry(deps *Deps) *Registry {
	reg := NewRegistry()
	reg.Register(QueryRecords(deps))
	reg.Register(QueryListEntries(deps))
	reg.Register(GetRecord(deps))
	reg.Register(GetAttributes(deps))
	reg.Register(GetSelectOptions(deps))
	reg.Register(GetListStatuses(deps))
	reg.Register(CreateNote(deps))
	reg.Register(AddToList(deps))
	reg.Register(ServerInfo(reg))
	return reg
}
