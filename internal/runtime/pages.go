package runtime

import (
	"github.com/aretw0/localsettings/pkg/domain"
)

// PageID identifies a page of the settings dialog.
type PageID int

const (
	PageGeneral PageID = iota
	PageCompose
	PageContentWarnings
	PageCollapsed
	PageMedia
)

// pageOrder is the navigation order; the first entry is the fallback page.
var pageOrder = []PageID{PageGeneral, PageCompose, PageContentWarnings, PageCollapsed, PageMedia}

func (id PageID) String() string {
	switch id {
	case PageGeneral:
		return "general"
	case PageCompose:
		return "compose_box_opts"
	case PageContentWarnings:
		return "content_warnings"
	case PageCollapsed:
		return "collapsed"
	case PageMedia:
		return "media"
	default:
		return "unknown"
	}
}

type sectionDef struct {
	title  string
	fields []domain.FieldDescriptor
}

type pageDef struct {
	id       string
	title    string
	sections []sectionDef
}

// fields returns every descriptor of the page in render order.
func (p pageDef) fields() []domain.FieldDescriptor {
	var out []domain.FieldDescriptor
	for _, s := range p.sections {
		out = append(out, s.fields...)
	}
	return out
}

func field(path, label string, opts ...func(*domain.FieldDescriptor)) domain.FieldDescriptor {
	d := domain.FieldDescriptor{
		ID:    path,
		Path:  domain.ParsePath(path),
		Label: label,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func hint(text string) func(*domain.FieldDescriptor) {
	return func(d *domain.FieldDescriptor) { d.Hint = text }
}

func options(opts ...domain.FieldOption) func(*domain.FieldDescriptor) {
	return func(d *domain.FieldDescriptor) { d.Options = opts }
}

func dependsOn(paths ...string) func(*domain.FieldDescriptor) {
	return func(d *domain.FieldDescriptor) {
		for _, p := range paths {
			d.DependsOn = append(d.DependsOn, domain.ParsePath(p))
		}
	}
}

func dependsOnNot(paths ...string) func(*domain.FieldDescriptor) {
	return func(d *domain.FieldDescriptor) {
		for _, p := range paths {
			d.DependsOnNot = append(d.DependsOnNot, domain.ParsePath(p))
		}
	}
}

func placeholder(text string) func(*domain.FieldDescriptor) {
	return func(d *domain.FieldDescriptor) { d.Placeholder = text }
}

func autoCollapse(path, label string) domain.FieldDescriptor {
	return field(path, label, dependsOn("collapsed.enabled"), dependsOnNot("collapsed.auto.all"))
}

var pageDefs = map[PageID]pageDef{
	PageGeneral: {
		id:    PageGeneral.String(),
		title: "General",
		sections: []sectionDef{
			{fields: []domain.FieldDescriptor{
				field("show_reply_count", "Display an estimate of the reply count"),
			}},
			{title: "Notifications options", fields: []domain.FieldDescriptor{
				field("notifications.tab_badge", "Unread notifications badge",
					hint("Display a badge for unread notifications in the column icons when the notifications column isn't open")),
				field("notifications.favicon_badge", "Unread notifications favicon badge",
					hint("Add a badge for unread notifications to the favicon")),
			}},
			{title: "Layout options", fields: []domain.FieldDescriptor{
				field("layout", "Layout:", options(
					domain.FieldOption{Value: domain.LayoutAuto, Label: "Auto"},
					domain.FieldOption{Value: domain.LayoutMultiple, Label: "Desktop"},
					domain.FieldOption{Value: domain.LayoutSingle, Label: "Mobile"},
				)),
				field("stretch", "Wide view (Desktop mode only)",
					hint("Stretches columns to better fill the available space.")),
				field("navbar_under", "Navbar at the bottom (Mobile only)"),
				field("swipe_to_change_columns", "Allow swiping to change columns (Mobile only)"),
			}},
		},
	},
	PageCompose: {
		id:    PageCompose.String(),
		title: "Compose box",
		sections: []sectionDef{
			{fields: []domain.FieldDescriptor{
				field("always_show_spoilers_field", "Always enable the Content Warning field"),
				field("preselect_on_reply", "Pre-select usernames on reply",
					hint("When replying to a conversation with multiple participants, pre-select usernames past the first")),
				field("confirm_missing_media_description", "Show confirmation dialog before sending toots lacking media descriptions"),
				field("confirm_before_clearing_draft", "Show confirmation dialog before overwriting the message being composed"),
				field("side_arm", "Secondary toot button:", options(
					domain.FieldOption{Value: domain.SideArmNone, Label: "None"},
					domain.FieldOption{Value: domain.SideArmDirect, Label: "Direct"},
					domain.FieldOption{Value: domain.SideArmPrivate, Label: "Followers-only"},
					domain.FieldOption{Value: domain.SideArmUnlisted, Label: "Unlisted"},
					domain.FieldOption{Value: domain.SideArmPublic, Label: "Public"},
				)),
				field("side_arm_reply_mode", "When replying to a toot:", options(
					domain.FieldOption{Value: domain.SideArmReplyKeep, Label: "Keep secondary toot button to set privacy"},
					domain.FieldOption{Value: domain.SideArmReplyCopy, Label: "Copy privacy setting of the toot being replied to"},
					domain.FieldOption{Value: domain.SideArmReplyRestrict, Label: "Restrict privacy setting to that of the toot being replied to"},
				)),
			}},
		},
	},
	PageContentWarnings: {
		id:    PageContentWarnings.String(),
		title: "Content warnings",
		sections: []sectionDef{
			{fields: []domain.FieldDescriptor{
				field("content_warnings.auto_unfold", "Automatically unfold content-warnings"),
				field("content_warnings.filter", "Content warnings to not automatically unfold:",
					dependsOn("content_warnings.auto_unfold"), placeholder("Regular expression")),
			}},
		},
	},
	PageCollapsed: {
		id:    PageCollapsed.String(),
		title: "Collapsed toots",
		sections: []sectionDef{
			{fields: []domain.FieldDescriptor{
				field("collapsed.enabled", "Enable collapsed toots"),
				field("collapsed.show_action_bar", "Show action buttons in collapsed toots", dependsOn("collapsed.enabled")),
			}},
			{title: "Automatic collapsing", fields: []domain.FieldDescriptor{
				field("collapsed.auto.all", "Everything", dependsOn("collapsed.enabled")),
				autoCollapse("collapsed.auto.notifications", "Notifications"),
				autoCollapse("collapsed.auto.lengthy", "Lengthy toots"),
				autoCollapse("collapsed.auto.reblogs", "Boosts"),
				autoCollapse("collapsed.auto.replies", "Replies"),
				autoCollapse("collapsed.auto.media", "Toots with media"),
			}},
			{title: "Image backgrounds", fields: []domain.FieldDescriptor{
				field("collapsed.backgrounds.user_backgrounds", "Give collapsed toots an image background", dependsOn("collapsed.enabled")),
				field("collapsed.backgrounds.preview_images", "Preview collapsed toot media", dependsOn("collapsed.enabled")),
			}},
		},
	},
	PageMedia: {
		id:    PageMedia.String(),
		title: "Media",
		sections: []sectionDef{
			{fields: []domain.FieldDescriptor{
				field("media.letterbox", "Letterbox media",
					hint("Scale down and letterbox media to fill the image containers instead of stretching and cropping them")),
				field("media.fullwidth", "Full-width media previews"),
				field("inline_preview_cards", "Inline preview cards for external links"),
				field("media.reveal_behind_cw", "Reveal sensitive media behind a CW by default"),
			}},
		},
	},
}

// homeColumnDef is the settings panel of the home timeline column.
var homeColumnDef = pageDef{
	id:    "home",
	title: "Column settings",
	sections: []sectionDef{
		{title: "Basic", fields: []domain.FieldDescriptor{
			field("home.shows.reblog", "Show boosts"),
			field("home.shows.reply", "Show replies"),
			field("home.shows.direct", "Show DMs"),
		}},
		{title: "Advanced", fields: []domain.FieldDescriptor{
			field("home.regex.body", "Filter out by regular expressions", placeholder("Filter out by regular expressions")),
		}},
	},
}
