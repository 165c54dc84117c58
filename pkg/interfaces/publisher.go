package interfaces

import "complaintdesk/pkg/types"

//go:generate go run go.uber.org/mock/mockgen -destination=../../internal/mocks/mock_publisher.go -package=mocks complaintdesk/pkg/interfaces Publisher

// Publisher pushes write events to every admin session.
// FUNCTIONAL DISCOVERY: No method returns an error; a request that already
// committed must never fail because a dashboard is unreachable
type Publisher interface {
	PublishNewComplaint(complaint *types.Complaint)
	PublishComplaintUpdate(complaint *types.Complaint)
	PublishStationUpdate(action types.StationAction, station *types.Station)
	PublishNotification(notification *types.Notification)
}
