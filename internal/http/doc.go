// Package http provides HTTP handlers and middleware for the meeting room
// scheduling API.
//
// The router exposes the following endpoints:
//   - POST /meetings: books the first free room for the requested range.
//     Body: {"start","end"} as RFC 3339 timestamps. Responds 201 with the
//     `meetingDTO` payload, 422 on validation failure, and 409 when no room
//     can hold the range.
//   - GET /meetings, GET /meetings/{id}, DELETE /meetings/{id}: active meeting
//     listing (optionally filtered with ?room=), lookup, and cancellation.
//     Cancelling an unknown id responds 404; the engine treats it as a no-op.
//   - GET /rooms, POST /rooms, GET /rooms/{id}, PUT /rooms/{id},
//     DELETE /rooms/{id}: room catalog endpoints exchanging the `roomDTO`
//     payload defined in room_handler.go. Deleting a room that still holds
//     meetings responds 409.
//   - GET /rooms/free?start=&end=: rooms able to hold the range, in
//     registration order.
//   - GET /rooms/{id}/availability?start=&end=: read-only probe for one room.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
