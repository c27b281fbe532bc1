package handler

import "github.com/avagyan/studgroups/internal/service"

type Handler struct {
	groupService       service.GroupService
	invitationService  service.InvitationService
	joinRequestService service.JoinRequestService
	acceptanceService  service.AcceptanceService
}

func NewHandler(
	groupService service.GroupService,
	invitationService service.InvitationService,
	joinRequestService service.JoinRequestService,
	acceptanceService service.AcceptanceService,
) *Handler {
	return &Handler{
		groupService:       groupService,
		invitationService:  invitationService,
		joinRequestService: joinRequestService,
		acceptanceService:  acceptanceService,
	}
}
