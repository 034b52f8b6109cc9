// Package gcode produces scoring programs for CNC glass-cutting tables.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/GlassCut/internal/model"
)

// Generator produces a scoring program from a sheet's cut list.
// Program coordinates put the origin at the bottom-left corner of the sheet.
type Generator struct {
	FeedRate float64
	Unit     string
	profile  model.TableProfile
}

// New returns a generator for the configured table profile and feed rate.
func New(cfg model.AppConfig) *Generator {
	return &Generator{
		FeedRate: cfg.ScoreFeedRate,
		Unit:     cfg.Unit,
		profile:  model.GetTableProfile(cfg.TableProfile),
	}
}

// Profile returns the table profile in use.
func (g *Generator) Profile() model.TableProfile {
	return g.profile
}

// GenerateSheet produces the program for a single sheet. Cuts are scored in
// cut list order, which is the guillotine order.
func (g *Generator) GenerateSheet(sheet model.SheetResult) string {
	var b strings.Builder

	g.writeHeader(&b, sheet)

	h := sheet.ScrapDims.Height
	for _, c := range sheet.CutList {
		g.writeCut(&b, c, h)
	}

	g.writeFooter(&b)
	return b.String()
}

// GenerateAll produces one program per consumed sheet, in cut order.
func (g *Generator) GenerateAll(result model.AllocationResult) []string {
	codes := make([]string, 0, len(result.UsedScraps))
	for _, sheet := range result.UsedScraps {
		codes = append(codes, g.GenerateSheet(sheet))
	}
	return codes
}

func (g *Generator) writeHeader(b *strings.Builder, sheet model.SheetResult) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("GlassCut scoring program - Cut #%d (%s)", sheet.CutID, sheet.ScrapName)))
	b.WriteString(g.comment(fmt.Sprintf("Sheet: %g x %g %s", sheet.ScrapDims.Width, sheet.ScrapDims.Height, g.Unit)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Cuts: %d, Waste: %.1f%%", sheet.FittedPieces, len(sheet.CutList), sheet.WastePercent)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %g %s/min", g.FeedRate, g.Unit)))
	b.WriteString(g.comment("Profile: " + p.Name))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString(p.ToolUp + "\n")
	b.WriteString("\n")
}

func (g *Generator) writeCut(b *strings.Builder, c model.Cut, sheetH float64) {
	p := g.profile
	ex, ey := c.End()

	b.WriteString(g.comment(fmt.Sprintf("Cut %d: %s, %g %s", c.Seq, c.Axis, c.Length, g.Unit)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(c.X), g.format(sheetH-c.Y)))
	b.WriteString(p.ToolDown + "\n")
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(ex), g.format(sheetH-ey), g.format(g.FeedRate)))
	b.WriteString(p.ToolUp + "\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
