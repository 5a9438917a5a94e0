package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchDetail Phase = iota
	FetchVideos
	FetchCredits
	FetchReviews
	FetchSimilar
	FetchCollection
	FetchFavorites
	RemoveFavorites
	DeleteIdentity
	Reauthenticate
	SignOut
	ExportFavorites
	SyncLegacy
)

func (p Phase) String() string {
	switch p {
	case FetchDetail:
		return "fetch_detail"
	case FetchVideos:
		return "fetch_videos"
	case FetchCredits:
		return "fetch_credits"
	case FetchReviews:
		return "fetch_reviews"
	case FetchSimilar:
		return "fetch_similar"
	case FetchCollection:
		return "fetch_collection"
	case FetchFavorites:
		return "fetch_favorites"
	case RemoveFavorites:
		return "remove_favorites"
	case DeleteIdentity:
		return "delete_identity"
	case Reauthenticate:
		return "reauthenticate"
	case SignOut:
		return "sign_out"
	case ExportFavorites:
		return "export_favorites"
	case SyncLegacy:
		return "sync_legacy"
	default:
		return ""
	}
}

func fetchDetailUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetail,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching details (%s)...", title),
	}
}

func fetchEndpointUpdate(phase Phase, step, total int, endpoint string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s...", endpoint),
	}
}

func removeFavoritesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveFavorites,
		Step:    step,
		Total:   total,
		Message: "Removing stored favorites...",
	}
}

func deleteIdentityUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteIdentity,
		Step:    step,
		Total:   total,
		Message: "Deleting account record...",
	}
}

func reauthenticateUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reauthenticate,
		Step:    step,
		Total:   total,
		Message: "Session too old, re-authenticating...",
	}
}

func signOutUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SignOut,
		Step:    step,
		Total:   total,
		Message: "Signing out...",
	}
}

func exportItemUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFavorites,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting %s...", title),
	}
}

func syncLegacyUpdate(step, total int, contentID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncLegacy,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Syncing favorite %s...", contentID),
	}
}
