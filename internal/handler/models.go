package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateGroupRequest struct {
	PlanID      string `json:"plan_id"`
	GroupName   string `json:"group_name"`
	Description string `json:"description"`
}

type GroupResponse struct {
	GroupID     string `json:"group_id"`
	PlanID      string `json:"plan_id"`
	GroupName   string `json:"group_name"`
	Description string `json:"description"`
	LeaderID    string `json:"leader_id"`
	MemberCount int    `json:"member_count"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type CreateGroupResponse struct {
	Group GroupResponse `json:"group"`
}

type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

type MemberResponse struct {
	UserID   string `json:"user_id"`
	JoinedAt string `json:"joined_at"`
}

type ListMembersResponse struct {
	GroupID string           `json:"group_id"`
	Members []MemberResponse `json:"members"`
}

type InviteRequest struct {
	GroupID   string `json:"group_id"`
	InviteeID string `json:"invitee_id"`
	Message   string `json:"message"`
}

type InvitationResponse struct {
	InvitationID string  `json:"invitation_id"`
	GroupID      string  `json:"group_id"`
	InviteeID    string  `json:"invitee_id"`
	InviterID    string  `json:"inviter_id"`
	Message      string  `json:"message,omitempty"`
	Status       string  `json:"status"`
	ExpiresAt    string  `json:"expires_at"`
	CreatedAt    string  `json:"created_at"`
	RespondedAt  *string `json:"responded_at,omitempty"`
}

type InviteResponse struct {
	Invitation InvitationResponse `json:"invitation"`
}

type InviteMultipleRequest struct {
	GroupID    string   `json:"group_id"`
	InviteeIDs []string `json:"invitee_ids"`
	Message    string   `json:"message"`
}

type InviteMultipleResponse struct {
	Created []InvitationResponse `json:"created"`
	Skipped []string             `json:"skipped"`
}

type CancelInvitationRequest struct {
	GroupID      string `json:"group_id"`
	InvitationID string `json:"invitation_id"`
}

type RespondInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
	Accept       bool   `json:"accept"`
}

type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

type JoinGroupRequest struct {
	GroupID string `json:"group_id"`
	Message string `json:"message"`
}

type JoinRequestResponse struct {
	RequestID   string  `json:"request_id"`
	GroupID     string  `json:"group_id"`
	UserID      string  `json:"user_id"`
	Message     string  `json:"message,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	RespondedAt *string `json:"responded_at,omitempty"`
	ResponderID *string `json:"responder_id,omitempty"`
}

type JoinGroupResponse struct {
	Request JoinRequestResponse `json:"request"`
}

type CancelJoinRequestRequest struct {
	RequestID string `json:"request_id"`
}

type RespondJoinRequestRequest struct {
	GroupID   string `json:"group_id"`
	RequestID string `json:"request_id"`
	Accept    bool   `json:"accept"`
}

type ListJoinRequestsResponse struct {
	Requests []JoinRequestResponse `json:"requests"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type TransferLeadershipRequest struct {
	GroupID     string `json:"group_id"`
	NewLeaderID string `json:"new_leader_id"`
}

type AssignTopicRequest struct {
	GroupID string `json:"group_id"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}
