// Package household holds the passive household state read by the decision
// engine: identity, members, device inventory, and behavioral preferences.
// Device flags are mutated in place by event handlers; everything else is
// read-only after construction.
package household

// Role distinguishes message recipients.
type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type Lock struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locked bool   `json:"locked"`
}

type Appliance struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	On   bool   `json:"on"`
}

type Camera struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Devices struct {
	Locks      []Lock      `json:"locks"`
	Appliances []Appliance `json:"appliances"`
	Cameras    []Camera    `json:"cameras"`
}

type Preferences struct {
	CeremonialTone                 bool `json:"ceremonialTone"`
	NudgesEnabled                  bool `json:"nudgesEnabled"`
	AutoArmOnDeparture             bool `json:"autoArmOnDeparture"`
	ConsentRequiredForChildDetours bool `json:"consentRequiredForChildDetours"`
	ArrivalDelayThresholdMinutes   int  `json:"arrivalDelayThresholdMinutes"`
}

type Household struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Context is the per-household state object. One decision engine owns one
// Context; avoid sharing a Context across engines so multiple households can
// run isolated instances.
type Context struct {
	Household   Household   `json:"household"`
	Members     []Member    `json:"members"`
	Devices     Devices     `json:"devices"`
	Preferences Preferences `json:"preferences"`
}

// Default returns the reference household fixture used by the demo scenario
// and tests.
func Default() *Context {
	return &Context{
		Household: Household{Name: "Heroes Cabin Sanctuary", Location: "Ocala, Florida"},
		Members: []Member{
			{ID: "parent-1", Name: "Leif", Role: RoleParent},
			{ID: "child-1", Name: "JD", Role: RoleChild},
		},
		Devices: Devices{
			Locks: []Lock{{ID: "front-lock", Name: "Front Door", Locked: true}},
			Appliances: []Appliance{
				{ID: "oven", Name: "Oven"},
				{ID: "stove", Name: "Stove"},
				{ID: "iron", Name: "Iron"},
			},
			Cameras: []Camera{{ID: "front-cam", Name: "Front Door Camera"}},
		},
		Preferences: Preferences{
			CeremonialTone:                 true,
			NudgesEnabled:                  true,
			ConsentRequiredForChildDetours: true,
			ArrivalDelayThresholdMinutes:   15,
		},
	}
}

// Lock returns a mutable reference to the lock with the given id.
func (c *Context) Lock(id string) (*Lock, bool) {
	for i := range c.Devices.Locks {
		if c.Devices.Locks[i].ID == id {
			return &c.Devices.Locks[i], true
		}
	}
	return nil, false
}

// Appliance returns a mutable reference to the appliance with the given id.
func (c *Context) Appliance(id string) (*Appliance, bool) {
	for i := range c.Devices.Appliances {
		if c.Devices.Appliances[i].ID == id {
			return &c.Devices.Appliances[i], true
		}
	}
	return nil, false
}

func (c *Context) Camera(id string) (Camera, bool) {
	for _, cam := range c.Devices.Cameras {
		if cam.ID == id {
			return cam, true
		}
	}
	return Camera{}, false
}

func (c *Context) Member(id string) (Member, bool) {
	for _, m := range c.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// PrimaryParent resolves the recipient for parent-facing prompts: the first
// member with the parent role.
func (c *Context) PrimaryParent() (Member, bool) {
	for _, m := range c.Members {
		if m.Role == RoleParent {
			return m, true
		}
	}
	return Member{}, false
}
