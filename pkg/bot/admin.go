package bot

import "go.mau.fi/whatsmeow/types"

// findParticipant matches on the user part so sender JIDs with a device
// suffix still resolve.
func findParticipant(info *types.GroupInfo, jid types.JID) *types.GroupParticipant {
	for i := range info.Participants {
		if info.Participants[i].JID.User == jid.User {
			return &info.Participants[i]
		}
	}
	return nil
}

func isAdmin(p *types.GroupParticipant) bool {
	return p != nil && (p.IsAdmin || p.IsSuperAdmin)
}

func isOwner(p *types.GroupParticipant) bool {
	return p != nil && p.IsSuperAdmin
}
