/*
Package site models the configuration descriptor of the Corgi notes documentation site:
title and description, the top navigation bar, social links, and the sidebars shown
under each route prefix. The descriptor is plain data; an external static site
generator imports it at build time and does all rendering and routing.

# Descriptor Files

A descriptor is authored as TOML, YAML or JSON and the format is chosen from the file
extension (".toml", ".yaml"/".yml", ".json"). Unknown fields are rejected. The JSON and
YAML shapes mirror the generator's own config object:

	{
	  "title": "Corgi笔记小站",
	  "lastUpdated": true,
	  "themeConfig": {
	    "nav": [{"text": "笔记", "link": "/guide/"}],
	    "socialLinks": [{"icon": "github", "link": "https://github.com/xluoyu/corgi-docs"}],
	    "sidebar": {
	      "/guide/": [{"text": "随笔", "link": "/guide/", "items": [...]}]
	    }
	  }
	}

TOML tables have no order, so in TOML the sidebar is an array of tables keyed by prefix:

	[[themeConfig.sidebar]]
	prefix = "/guide/"

	  [[themeConfig.sidebar.sections]]
	  text = "随笔"
	  link = "/guide/"

# Ordering

The order of nav items, sidebar prefixes, sections and items is display order and is
kept exactly as authored through every codec. SidebarMap is therefore a slice and not
a Go map.

# Validation

Validate checks structure only: routes begin with "/", sidebar prefixes begin and end
with "/", item links are unique within a section, social icons are known and every
section route in the nav bar has a sidebar of the same prefix (and the reverse).
CheckLinks additionally resolves links against a documents tree:

	Link                 Document
	-------------------  --------------------
	/guide/              guide/index.md
	/about               about.md
	/code/string.md      code/string.md
	/code/string.html    code/string.md

# Scaffolding

Scaffold lists the markdown files of one folder as a sidebar section. Item text comes
from the "title" key of the front matter (TOML between "+++" lines or YAML between
"---" lines), then the first heading of the document, then the file name.
*/
package site
