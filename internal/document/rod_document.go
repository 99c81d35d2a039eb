package document

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

const (
	jsLocation = `() => location.href`
	jsHasBody  = `() => !!document.body`
	jsScripts  = `() => Array.from(document.getElementsByTagName("script"))
		.map(s => s.getAttribute("src"))
		.filter(src => !!src)`
	jsLinks = `(attr, srcAttr) => {
		let seq = window.__livereloadSeq || 0;
		const out = [];
		for (const l of document.getElementsByTagName("link")) {
			if (!l.getAttribute(attr)) l.setAttribute(attr, "lr-" + (++seq));
			out.push({
				id: l.getAttribute(attr),
				href: l.getAttribute("href") || "",
				rel: l.getAttribute("rel") || "",
				source: l.getAttribute(srcAttr) || "",
			});
		}
		window.__livereloadSeq = seq;
		return out;
	}`
	jsInsertAfter = `(attr, id, href, srcAttr, source) => {
		const old = document.querySelector("link[" + attr + "=\"" + id + "\"]");
		if (!old) return "";
		const seq = (window.__livereloadSeq || 0) + 1;
		window.__livereloadSeq = seq;
		const link = document.createElement("link");
		link.rel = "stylesheet";
		link.type = "text/css";
		link.href = href;
		link.setAttribute(attr, "lr-" + seq);
		if (source) link.setAttribute(srcAttr, source);
		if (old.nextSibling) old.parentNode.insertBefore(link, old.nextSibling);
		else old.parentNode.appendChild(link);
		return "lr-" + seq;
	}`
	jsRemove = `(attr, id) => {
		const l = document.querySelector("link[" + attr + "=\"" + id + "\"]");
		if (!l) return false;
		l.parentNode.removeChild(l);
		return true;
	}`
	jsReady = `(attr, id) => {
		const l = document.querySelector("link[" + attr + "=\"" + id + "\"]");
		if (!l) return "missing";
		try {
			const rules = l.sheet.cssRules || l.sheet.rules;
			return rules ? "ready" : "pending";
		} catch (e) {
			return "pending";
		}
	}`
	jsAddClass    = `(c) => document.documentElement.classList.add(c)`
	jsRemoveClass = `(c) => document.documentElement.classList.remove(c)`
	jsStyle       = `(css, attr) => {
		let style = document.querySelector("style[" + attr + "]");
		if (!style) {
			style = document.createElement("style");
			style.setAttribute("type", "text/css");
			style.setAttribute(attr, "");
			(document.head || document.documentElement).appendChild(style);
		}
		style.textContent = css;
	}`
	jsNotify = `(m) => console.info(m)`
)

// RodDocument drives a live Chrome tab.
type RodDocument struct {
	page   *rod.Page
	logger zerolog.Logger
}

// NewRodDocument wraps an already navigated page.
func NewRodDocument(page *rod.Page, logger zerolog.Logger) *RodDocument {
	return &RodDocument{
		page:   page,
		logger: logger.With().Str("component", "RodDocument").Logger(),
	}
}

func (d *RodDocument) eval(ctx context.Context, js string, args ...interface{}) (*proto.RuntimeRemoteObject, error) {
	return d.page.Context(ctx).Eval(js, args...)
}

func (d *RodDocument) Location(ctx context.Context) (string, error) {
	res, err := d.eval(ctx, jsLocation)
	if err != nil {
		return "", fmt.Errorf("document: read location: %w", err)
	}
	return res.Value.Str(), nil
}

func (d *RodDocument) HasBody(ctx context.Context) (bool, error) {
	res, err := d.eval(ctx, jsHasBody)
	if err != nil {
		return false, fmt.Errorf("document: check body: %w", err)
	}
	return res.Value.Bool(), nil
}

func (d *RodDocument) ScriptSources(ctx context.Context) ([]string, error) {
	res, err := d.eval(ctx, jsScripts)
	if err != nil {
		return nil, fmt.Errorf("document: list scripts: %w", err)
	}
	var srcs []string
	if err := res.Value.Unmarshal(&srcs); err != nil {
		return nil, fmt.Errorf("document: decode scripts: %w", err)
	}
	return srcs, nil
}

func (d *RodDocument) Links(ctx context.Context) ([]Link, error) {
	res, err := d.eval(ctx, jsLinks, IDAttribute, SourceAttribute)
	if err != nil {
		return nil, fmt.Errorf("document: list links: %w", err)
	}
	var links []Link
	if err := res.Value.Unmarshal(&links); err != nil {
		return nil, fmt.Errorf("document: decode links: %w", err)
	}
	return links, nil
}

func (d *RodDocument) InsertStylesheetAfter(ctx context.Context, after Link, href, source string) (Link, error) {
	res, err := d.eval(ctx, jsInsertAfter, IDAttribute, after.ID, href, SourceAttribute, source)
	if err != nil {
		return Link{}, fmt.Errorf("document: insert stylesheet: %w", err)
	}
	if res.Value.Str() == "" {
		return Link{}, ErrLinkNotFound
	}
	return Link{ID: res.Value.Str(), Href: href, Rel: "stylesheet", Source: source}, nil
}

func (d *RodDocument) RemoveLink(ctx context.Context, link Link) error {
	res, err := d.eval(ctx, jsRemove, IDAttribute, link.ID)
	if err != nil {
		return fmt.Errorf("document: remove link: %w", err)
	}
	if !res.Value.Bool() {
		return ErrLinkNotFound
	}
	return nil
}

func (d *RodDocument) StylesheetReady(ctx context.Context, link Link) error {
	res, err := d.eval(ctx, jsReady, IDAttribute, link.ID)
	if err != nil {
		return fmt.Errorf("document: check stylesheet: %w", err)
	}
	switch res.Value.Str() {
	case "ready":
		return nil
	case "missing":
		return ErrLinkNotFound
	default:
		return ErrStylesheetNotReady
	}
}

func (d *RodDocument) AddRootClass(ctx context.Context, class string) error {
	if _, err := d.eval(ctx, jsAddClass, class); err != nil {
		return fmt.Errorf("document: add class: %w", err)
	}
	return nil
}

func (d *RodDocument) RemoveRootClass(ctx context.Context, class string) error {
	if _, err := d.eval(ctx, jsRemoveClass, class); err != nil {
		return fmt.Errorf("document: remove class: %w", err)
	}
	return nil
}

func (d *RodDocument) InstallStyle(ctx context.Context, css string) error {
	if _, err := d.eval(ctx, jsStyle, css, StyleAttribute); err != nil {
		return fmt.Errorf("document: install style: %w", err)
	}
	return nil
}

// Reload reloads the tab and waits for the load event.
func (d *RodDocument) Reload(ctx context.Context) error {
	p := d.page.Context(ctx)
	if err := p.Reload(); err != nil {
		return fmt.Errorf("document: reload: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		d.logger.Warn().Err(err).Msg("Wait for load after reload failed")
	}
	return nil
}

func (d *RodDocument) Notify(ctx context.Context, message string) error {
	d.logger.Info().Msg(message)
	if _, err := d.eval(ctx, jsNotify, message); err != nil {
		return fmt.Errorf("document: notify: %w", err)
	}
	return nil
}
