package domain

// Layout values.
const (
	LayoutAuto     = "auto"
	LayoutMultiple = "multiple"
	LayoutSingle   = "single"
)

// Secondary toot button (side arm) privacy values.
const (
	SideArmNone     = "none"
	SideArmDirect   = "direct"
	SideArmPrivate  = "private"
	SideArmUnlisted = "unlisted"
	SideArmPublic   = "public"
)

// Side arm behaviour when replying.
const (
	SideArmReplyKeep     = "keep"
	SideArmReplyCopy     = "copy"
	SideArmReplyRestrict = "restrict"
)

// Settings is one account's local preferences.
// It contains only scalar fields, so a plain copy is a deep copy and a
// Settings value can be shared as an immutable snapshot.
type Settings struct {
	Layout               string `json:"layout" yaml:"layout" mapstructure:"layout"`
	Stretch              bool   `json:"stretch" yaml:"stretch" mapstructure:"stretch"`
	NavbarUnder          bool   `json:"navbar_under" yaml:"navbar_under" mapstructure:"navbar_under"`
	SwipeToChangeColumns bool   `json:"swipe_to_change_columns" yaml:"swipe_to_change_columns" mapstructure:"swipe_to_change_columns"`
	SideArm              string `json:"side_arm" yaml:"side_arm" mapstructure:"side_arm"`
	SideArmReplyMode     string `json:"side_arm_reply_mode" yaml:"side_arm_reply_mode" mapstructure:"side_arm_reply_mode"`
	ShowReplyCount       bool   `json:"show_reply_count" yaml:"show_reply_count" mapstructure:"show_reply_count"`

	AlwaysShowSpoilersField        bool `json:"always_show_spoilers_field" yaml:"always_show_spoilers_field" mapstructure:"always_show_spoilers_field"`
	ConfirmMissingMediaDescription bool `json:"confirm_missing_media_description" yaml:"confirm_missing_media_description" mapstructure:"confirm_missing_media_description"`
	ConfirmBeforeClearingDraft     bool `json:"confirm_before_clearing_draft" yaml:"confirm_before_clearing_draft" mapstructure:"confirm_before_clearing_draft"`
	PreselectOnReply               bool `json:"preselect_on_reply" yaml:"preselect_on_reply" mapstructure:"preselect_on_reply"`
	InlinePreviewCards             bool `json:"inline_preview_cards" yaml:"inline_preview_cards" mapstructure:"inline_preview_cards"`

	ContentWarnings ContentWarningSettings `json:"content_warnings" yaml:"content_warnings" mapstructure:"content_warnings"`
	Collapsed       CollapsedSettings      `json:"collapsed" yaml:"collapsed" mapstructure:"collapsed"`
	Media           MediaSettings          `json:"media" yaml:"media" mapstructure:"media"`
	Notifications   NotificationSettings   `json:"notifications" yaml:"notifications" mapstructure:"notifications"`

	// Home holds the home timeline column settings.
	Home ColumnSettings `json:"home" yaml:"home" mapstructure:"home"`
}

type ContentWarningSettings struct {
	AutoUnfold bool `json:"auto_unfold" yaml:"auto_unfold" mapstructure:"auto_unfold"`
	// Filter is a regular expression; matching warnings are not unfolded.
	Filter string `json:"filter" yaml:"filter" mapstructure:"filter"`
}

type CollapsedSettings struct {
	Enabled       bool                `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	ShowActionBar bool                `json:"show_action_bar" yaml:"show_action_bar" mapstructure:"show_action_bar"`
	Auto          AutoCollapse        `json:"auto" yaml:"auto" mapstructure:"auto"`
	Backgrounds   CollapseBackgrounds `json:"backgrounds" yaml:"backgrounds" mapstructure:"backgrounds"`
}

type AutoCollapse struct {
	All           bool `json:"all" yaml:"all" mapstructure:"all"`
	Notifications bool `json:"notifications" yaml:"notifications" mapstructure:"notifications"`
	Lengthy       bool `json:"lengthy" yaml:"lengthy" mapstructure:"lengthy"`
	Reblogs       bool `json:"reblogs" yaml:"reblogs" mapstructure:"reblogs"`
	Replies       bool `json:"replies" yaml:"replies" mapstructure:"replies"`
	Media         bool `json:"media" yaml:"media" mapstructure:"media"`
}

type CollapseBackgrounds struct {
	UserBackgrounds bool `json:"user_backgrounds" yaml:"user_backgrounds" mapstructure:"user_backgrounds"`
	PreviewImages   bool `json:"preview_images" yaml:"preview_images" mapstructure:"preview_images"`
}

type MediaSettings struct {
	Letterbox      bool `json:"letterbox" yaml:"letterbox" mapstructure:"letterbox"`
	Fullwidth      bool `json:"fullwidth" yaml:"fullwidth" mapstructure:"fullwidth"`
	RevealBehindCW bool `json:"reveal_behind_cw" yaml:"reveal_behind_cw" mapstructure:"reveal_behind_cw"`
}

type NotificationSettings struct {
	TabBadge     bool `json:"tab_badge" yaml:"tab_badge" mapstructure:"tab_badge"`
	FaviconBadge bool `json:"favicon_badge" yaml:"favicon_badge" mapstructure:"favicon_badge"`
}

// ColumnSettings configures what a timeline column shows.
type ColumnSettings struct {
	Shows ColumnShows `json:"shows" yaml:"shows" mapstructure:"shows"`
	Regex ColumnRegex `json:"regex" yaml:"regex" mapstructure:"regex"`
}

type ColumnShows struct {
	Reblog bool `json:"reblog" yaml:"reblog" mapstructure:"reblog"`
	Reply  bool `json:"reply" yaml:"reply" mapstructure:"reply"`
	Direct bool `json:"direct" yaml:"direct" mapstructure:"direct"`
}

type ColumnRegex struct {
	Body string `json:"body" yaml:"body" mapstructure:"body"`
}

// DefaultSettings returns the preferences of an account that never changed anything.
func DefaultSettings() Settings {
	return Settings{
		Layout:               LayoutAuto,
		Stretch:              true,
		NavbarUnder:          false,
		SwipeToChangeColumns: true,
		SideArm:              SideArmNone,
		SideArmReplyMode:     SideArmReplyKeep,
		ShowReplyCount:       false,

		AlwaysShowSpoilersField:        false,
		ConfirmMissingMediaDescription: false,
		ConfirmBeforeClearingDraft:     true,
		PreselectOnReply:               true,
		InlinePreviewCards:             true,

		ContentWarnings: ContentWarningSettings{AutoUnfold: false},
		Collapsed: CollapsedSettings{
			Enabled:       true,
			ShowActionBar: true,
			Auto: AutoCollapse{
				Notifications: true,
				Lengthy:       true,
			},
		},
		Media: MediaSettings{
			Letterbox: true,
			Fullwidth: true,
		},
		Notifications: NotificationSettings{
			TabBadge: true,
		},
		Home: ColumnSettings{
			Shows: ColumnShows{Reblog: true, Reply: true, Direct: true},
		},
	}
}
