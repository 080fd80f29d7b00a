package types

// UserResponse is the public view of a user returned by the accounts
// endpoints. Password material never leaves the handlers.
type UserResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Frontend  bool   `json:"frontend"`
	Backend   bool   `json:"backend"`
}

// ProjectResponse is returned after creating a project or listing projects
// owned by a user.
type ProjectResponse struct {
	Email       string `json:"email"`
	ProjectName string `json:"projectname"`
	Description string `json:"description"`
	Frontend    bool   `json:"frontend"`
	Backend     bool   `json:"backend"`
}

// ProjectDisplayResponse is a discovery-listing row: project details plus
// owner display data.
type ProjectDisplayResponse struct {
	OwnerEmail  string `json:"owner_email"`
	FName       string `json:"fname"`
	LName       string `json:"lname"`
	ProjectName string `json:"projectname"`
	Description string `json:"description"`
	Frontend    bool   `json:"frontend"`
	Backend     bool   `json:"backend"`
}

// JoinRequestResponse echoes a created join request.
type JoinRequestResponse struct {
	OwnerEmail  string `json:"owner_email"`
	ProjectName string `json:"projectname"`
	MemberEmail string `json:"member_email"`
	Message     string `json:"message"`
}

// PendingRequestResponse is one row of an owner's pending-request listing.
type PendingRequestResponse struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	FName   string `json:"fname"`
	LName   string `json:"lname"`
	Message string `json:"message"`
}

// MemberResponse is one row of a project's member listing.
type MemberResponse struct {
	MemberEmail string `json:"member_email"`
	MemberFName string `json:"member_fname"`
	MemberLName string `json:"member_lname"`
}

// JoinedProjectResponse is one row of a user's joined-project listing.
type JoinedProjectResponse struct {
	ProjectName string `json:"projectname"`
	Description string `json:"description"`
	OwnerEmail  string `json:"owner_email"`
	OwnerFName  string `json:"owner_fname"`
	OwnerLName  string `json:"owner_lname"`
}

// PendingProjectResponse is one row of a user's own pending-request listing.
type PendingProjectResponse struct {
	ProjectName string `json:"projectname"`
	Description string `json:"description"`
	Message     string `json:"message"`
	OwnerEmail  string `json:"owner_email"`
	OwnerFName  string `json:"owner_fname"`
	OwnerLName  string `json:"owner_lname"`
}

// ProjectCountResponse is the per-user summary returned by /projectcount.
type ProjectCountResponse struct {
	CreatedProjects int64 `json:"createdprojects"`
	JoinedProjects  int64 `json:"joinedprojects"`
	PendingRequests int64 `json:"pendingrequests"`
}
