package handlers

import (
	"github.com/tesseract-hub/translation-api/internal/registry"
)

// BasePath is the route prefix the hyperlinks are built against.
const BasePath = "/api/v2"

// Link is one outbound hyperlink in a resource representation.
type Link struct {
	Href      string `json:"href"`
	Name      string `json:"name,omitempty"`
	Title     string `json:"title,omitempty"`
	Templated bool   `json:"templated,omitempty"`
}

// LanguageResource is the wire form of one language.
type LanguageResource struct {
	Links languageResourceLinks `json:"_links"`
	Name  string                `json:"name"`
	Title string                `json:"title"`
}

type languageResourceLinks struct {
	Self      Link `json:"self"`
	Translate Link `json:"translate"`
}

// ModelResource is the wire form of one model descriptor.
type ModelResource struct {
	Links    modelResourceLinks `json:"_links"`
	Default  bool               `json:"default"`
	Domain   string             `json:"domain"`
	Model    string             `json:"model"`
	Supports registry.Supports  `json:"supports"`
	Title    string             `json:"title"`
}

type modelResourceLinks struct {
	Self      Link `json:"self"`
	Translate Link `json:"translate"`
}

func languageResource(l registry.Language) LanguageResource {
	return LanguageResource{
		Links: languageResourceLinks{
			Self:      Link{Href: BasePath + "/languages/" + l.Code},
			Translate: pairTranslateLink(),
		},
		Name:  l.Code,
		Title: l.Title,
	}
}

func pairTranslateLink() Link {
	return Link{Href: BasePath + "/languages{?src,tgt}", Templated: true}
}

func modelResource(m *registry.Model) ModelResource {
	return ModelResource{
		Links: modelResourceLinks{
			Self:      Link{Href: BasePath + "/models/" + m.Name},
			Translate: Link{Href: BasePath + "/models/" + m.Name + "{?src,tgt}", Templated: true},
		},
		Default:  m.Default,
		Domain:   m.Domain,
		Model:    m.Name,
		Supports: m.Supports,
		Title:    m.Title,
	}
}

type collectionLinks struct {
	Item      []Link `json:"item"`
	Self      Link   `json:"self"`
	Translate *Link  `json:"translate,omitempty"`
}
