package server

import (
	"net/http"

	"github.com/avagyan/studgroups/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("POST /groups/create", h.CreateGroup)
	mux.HandleFunc("GET /groups/get", h.GetGroup)
	mux.HandleFunc("GET /groups/list", h.ListGroups)
	mux.HandleFunc("GET /groups/members", h.ListMembers)
	mux.HandleFunc("POST /groups/invite", h.InviteMember)
	mux.HandleFunc("POST /groups/inviteMultiple", h.InviteMultiple)
	mux.HandleFunc("POST /groups/join", h.RequestToJoin)
	mux.HandleFunc("POST /groups/leave", h.LeaveGroup)
	mux.HandleFunc("POST /groups/transferLeadership", h.TransferLeadership)
	mux.HandleFunc("POST /groups/assignTopic", h.AssignTopic)
	mux.HandleFunc("POST /invitations/cancel", h.CancelInvitation)
	mux.HandleFunc("POST /invitations/respond", h.RespondToInvitation)
	mux.HandleFunc("GET /invitations/list", h.ListInvitations)
	mux.HandleFunc("POST /joinRequests/cancel", h.CancelJoinRequest)
	mux.HandleFunc("POST /joinRequests/respond", h.RespondToJoinRequest)
	mux.HandleFunc("GET /joinRequests/list", h.ListJoinRequests)
}
