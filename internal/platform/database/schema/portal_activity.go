// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PortalActivityTable represents the 'portal.activity' table
type PortalActivityTable struct {
	Table     string
	ID        string
	UserID    string
	Action    string
	Category  string
	Success   string
	Message   string
	RequestID string
	CreatedAt string
}

// PortalActivity is the schema definition for portal.activity
var PortalActivity = PortalActivityTable{
	Table:     "portal.activity",
	ID:        "id",
	UserID:    "userid",
	Action:    "action",
	Category:  "category",
	Success:   "success",
	Message:   "message",
	RequestID: "requestid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t PortalActivityTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Action, t.Category, t.Success, t.Message, t.RequestID, t.CreatedAt,
	}
}
