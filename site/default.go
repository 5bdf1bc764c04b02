package site

// Default returns the descriptor of the Corgi notes site. Each call returns
// a fresh value.
func Default() *Descriptor {
	return &Descriptor{
		Title:       "Corgi笔记小站",
		Description: "Just playing around.",
		LastUpdated: true,
		ThemeConfig: Theme{
			Logo:            "https://corgi-icode.netlify.app/logo.png",
			LastUpdatedText: "Updated Date",
			Nav: []NavItem{
				{Text: "笔记", Link: "/guide/"},
				{Text: "八股文", Link: "/interview/"},
				{Text: "代码块", Link: "/code/"},
				{Text: "关于我", Link: "/about"},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/xluoyu/corgi-docs"},
			},
			Sidebar: SidebarMap{
				{
					Prefix: "/guide/",
					Sections: []SidebarSection{{
						Text:        "随笔",
						Link:        "/guide/",
						Collapsible: Bool(true),
						Items: []SidebarItem{
							{Text: "这是一个标题党哈哈哈哈哈哈", Link: "/guide/第一篇笔记.md"},
						},
					}},
				},
				{
					Prefix: "/interview/",
					Sections: []SidebarSection{{
						Text:  "HTML",
						Items: []SidebarItem{},
					}},
				},
				{
					Prefix: "/code/",
					Sections: []SidebarSection{{
						Text: "常用代码",
						Link: "/code/",
						Items: []SidebarItem{
							{Text: "大屏适配", Link: "/code/大屏适配.md"},
							{Text: "常用的字符串方法", Link: "/code/string.md"},
						},
					}},
				},
			},
		},
	}
}
