package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// i18nJSON serializes a LocalizedField for a JSON column. A nil field
// persists as SQL NULL: the "no localized override" signal survives the
// round trip.
func i18nJSON(f i18n.LocalizedField) any {
	if f == nil {
		return nil
	}
	b, _ := json.Marshal(f)
	return string(b)
}

func scanI18n(b []byte) i18n.LocalizedField {
	if len(b) == 0 {
		return nil
	}
	var f i18n.LocalizedField
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	if len(f) == 0 {
		return nil
	}
	return f
}

func scanImages(b []byte) []string {
	var out []string
	_ = json.Unmarshal(b, &out)
	return out
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
func nullInt(ns sql.NullInt64) *int {
	if !ns.Valid {
		return nil
	}
	n := int(ns.Int64)
	return &n
}
func nullInt64(ns sql.NullInt64) *int64 {
	if !ns.Valid {
		return nil
	}
	n := ns.Int64
	return &n
}
func nullF64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- yachts ----

func (r *Repo) UpsertYacht(ctx context.Context, y domain.Yacht) error {
	imgs, _ := json.Marshal(y.Images)
	_, err := r.db.ExecContext(ctx, upsertYachtSQL,
		y.ID,
		y.Slug,
		valStr(y.Model),
		valF64(y.LengthM),
		valInt(y.Cabins),
		valInt(y.Berths),
		valInt(y.YearBuilt),
		valF64(y.LowSeasonPrice),
		valF64(y.MediumSeasonPrice),
		valF64(y.HighSeasonPrice),
		i18nJSON(y.Name),
		i18nJSON(y.Description),
		valStr(y.DescriptionEN),
		valStr(y.DescriptionES),
		valStr(y.DescriptionDE),
		valStr(y.DescriptionTx),
		string(imgs),
	)
	return err
}

func (r *Repo) scanYacht(row interface{ Scan(...any) error }) (domain.Yacht, error) {
	var y domain.Yacht
	var model sql.NullString
	var lengthM sql.NullFloat64
	var cabins, berths, yearBuilt sql.NullInt64
	var low, med, high sql.NullFloat64
	var nameJSON, descJSON, imagesJSON []byte
	var descEN, descES, descDE, descTx sql.NullString

	if err := row.Scan(
		&y.ID, &y.Slug, &model, &lengthM, &cabins, &berths, &yearBuilt,
		&low, &med, &high,
		&nameJSON, &descJSON,
		&descEN, &descES, &descDE, &descTx, &imagesJSON,
	); err != nil {
		return domain.Yacht{}, err
	}
	y.Model = nullStr(model)
	y.LengthM = nullF64(lengthM)
	y.Cabins = nullInt(cabins)
	y.Berths = nullInt(berths)
	y.YearBuilt = nullInt(yearBuilt)
	y.LowSeasonPrice = nullF64(low)
	y.MediumSeasonPrice = nullF64(med)
	y.HighSeasonPrice = nullF64(high)
	y.Name = scanI18n(nameJSON)
	y.Description = scanI18n(descJSON)
	y.DescriptionEN = nullStr(descEN)
	y.DescriptionES = nullStr(descES)
	y.DescriptionDE = nullStr(descDE)
	y.DescriptionTx = nullStr(descTx)
	y.Images = scanImages(imagesJSON)
	return y, nil
}

func (r *Repo) GetYacht(ctx context.Context, id int64) (domain.Yacht, error) {
	y, err := r.scanYacht(r.db.QueryRowContext(ctx, getYachtSQL, id))
	if err == sql.ErrNoRows {
		return domain.Yacht{}, domain.ErrNotFound
	}
	return y, err
}

func (r *Repo) ListYachts(ctx context.Context) ([]domain.Yacht, error) {
	rows, err := r.db.QueryContext(ctx, listYachtsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Yacht
	for rows.Next() {
		y, err := r.scanYacht(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

func (r *Repo) ListRateCards(ctx context.Context) ([]domain.RateCard, error) {
	rows, err := r.db.QueryContext(ctx, listRateCardsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RateCard
	for rows.Next() {
		var c domain.RateCard
		var low, med, high sql.NullFloat64
		if err := rows.Scan(&c.ID, &low, &med, &high); err != nil {
			return nil, err
		}
		c.LowSeasonPrice = nullF64(low)
		c.MediumSeasonPrice = nullF64(med)
		c.HighSeasonPrice = nullF64(high)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---- destinations ----

func (r *Repo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	imgs, _ := json.Marshal(d.Images)
	_, err := r.db.ExecContext(ctx, upsertDestinationSQL,
		d.ID,
		d.Slug,
		valStr(d.Region),
		i18nJSON(d.Name),
		i18nJSON(d.Description),
		valStr(d.DescriptionEN),
		valStr(d.DescriptionES),
		valStr(d.DescriptionDE),
		valStr(d.DescriptionTx),
		string(imgs),
	)
	return err
}

func (r *Repo) scanDestination(row interface{ Scan(...any) error }) (domain.Destination, error) {
	var d domain.Destination
	var region sql.NullString
	var nameJSON, descJSON, imagesJSON []byte
	var descEN, descES, descDE, descTx sql.NullString

	if err := row.Scan(
		&d.ID, &d.Slug, &region,
		&nameJSON, &descJSON,
		&descEN, &descES, &descDE, &descTx, &imagesJSON,
	); err != nil {
		return domain.Destination{}, err
	}
	d.Region = nullStr(region)
	d.Name = scanI18n(nameJSON)
	d.Description = scanI18n(descJSON)
	d.DescriptionEN = nullStr(descEN)
	d.DescriptionES = nullStr(descES)
	d.DescriptionDE = nullStr(descDE)
	d.DescriptionTx = nullStr(descTx)
	d.Images = scanImages(imagesJSON)
	return d, nil
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	d, err := r.scanDestination(r.db.QueryRowContext(ctx, getDestinationSQL, id))
	if err == sql.ErrNoRows {
		return domain.Destination{}, domain.ErrNotFound
	}
	return d, err
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		d, err := r.scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ---- i18n partial updates ----

// i18nColumn maps an editable field to its JSON column. The switch is
// the whitelist; column names never come from request data.
func i18nColumn(field domain.I18nField) (string, bool) {
	switch field {
	case domain.FieldName:
		return "name_i18n", true
	case domain.FieldDescription:
		return "description_i18n", true
	}
	return "", false
}

func (r *Repo) updateI18n(ctx context.Context, table string, id int64, field domain.I18nField, f i18n.LocalizedField) error {
	col, ok := i18nColumn(field)
	if !ok {
		return domain.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE "+table+" SET "+col+" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		i18nJSON(f), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the row is missing or the value was unchanged;
		// distinguish so editors get a proper 404.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one); err == sql.ErrNoRows {
			return domain.ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) UpdateYachtI18n(ctx context.Context, id int64, field domain.I18nField, f i18n.LocalizedField) error {
	return r.updateI18n(ctx, "yachts", id, field, f)
}

func (r *Repo) UpdateDestinationI18n(ctx context.Context, id int64, field domain.I18nField, f i18n.LocalizedField) error {
	return r.updateI18n(ctx, "destinations", id, field, f)
}

// ---- reviews ----

func (r *Repo) UpsertReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, upsertReviewSQL,
		rv.ID,
		valInt64(rv.YachtID),
		valStr(rv.Author),
		valF64(rv.Rating),
		valStr(rv.Locale),
		valStr(rv.Title),
		valStr(rv.Text),
	)
	return err
}

func (r *Repo) ListReviews(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	limit := pg.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var yachtID sql.NullInt64
		var author, locale, title, text sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&rv.ID, &yachtID, &author, &rating, &locale, &title, &text); err != nil {
			return domain.ReviewsPage{}, err
		}
		rv.YachtID = nullInt64(yachtID)
		rv.Author = nullStr(author)
		rv.Rating = nullF64(rating)
		rv.Locale = nullStr(locale)
		rv.Title = nullStr(title)
		rv.Text = nullStr(text)
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out}, nil
}

// ---- crew ----

func (r *Repo) UpsertCrewMember(ctx context.Context, c domain.CrewMember) error {
	_, err := r.db.ExecContext(ctx, upsertCrewSQL,
		c.ID,
		c.Name,
		i18nJSON(c.Role),
		i18nJSON(c.Bio),
		valStr(c.PhotoURL),
		c.Position,
	)
	return err
}

func (r *Repo) ListCrew(ctx context.Context) ([]domain.CrewMember, error) {
	rows, err := r.db.QueryContext(ctx, listCrewSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CrewMember
	for rows.Next() {
		var c domain.CrewMember
		var roleJSON, bioJSON []byte
		var photo sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &roleJSON, &bioJSON, &photo, &c.Position); err != nil {
			return nil, err
		}
		c.Role = scanI18n(roleJSON)
		c.Bio = scanI18n(bioJSON)
		c.PhotoURL = nullStr(photo)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---- site stats ----

func (r *Repo) UpsertSiteStat(ctx context.Context, s domain.SiteStat) error {
	_, err := r.db.ExecContext(ctx, upsertSiteStatSQL,
		s.Key,
		i18nJSON(s.Label),
		s.Value,
		s.Position,
	)
	return err
}

func (r *Repo) ListSiteStats(ctx context.Context) ([]domain.SiteStat, error) {
	rows, err := r.db.QueryContext(ctx, listSiteStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SiteStat
	for rows.Next() {
		var s domain.SiteStat
		var labelJSON []byte
		if err := rows.Scan(&s.Key, &labelJSON, &s.Value, &s.Position); err != nil {
			return nil, err
		}
		s.Label = scanI18n(labelJSON)
		out = append(out, s)
	}
	return out, rows.Err()
}

// ---- inquiries ----

func (r *Repo) InsertInquiry(ctx context.Context, q domain.Inquiry) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertInquirySQL,
		valInt64(q.YachtID),
		q.Name,
		q.Email,
		valStr(q.Phone),
		valStr(q.StartDate),
		valStr(q.EndDate),
		valStr(q.Message),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, listInquiriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Inquiry
	for rows.Next() {
		var q domain.Inquiry
		var yachtID sql.NullInt64
		var phone, start, end, msg sql.NullString
		if err := rows.Scan(&q.ID, &yachtID, &q.Name, &q.Email, &phone, &start, &end, &msg, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.YachtID = nullInt64(yachtID)
		q.Phone = nullStr(phone)
		q.StartDate = nullStr(start)
		q.EndDate = nullStr(end)
		q.Message = nullStr(msg)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *Repo) CountYachts(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM yachts")
}
func (r *Repo) CountGalleryImages(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM gallery_images")
}

func (r *Repo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ---- gallery ----

func (r *Repo) InsertGalleryImage(ctx context.Context, g domain.GalleryImage) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertGalleryImageSQL,
		g.URL,
		g.Key,
		i18nJSON(g.Alt),
		g.Position,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) scanGalleryImage(row interface{ Scan(...any) error }) (domain.GalleryImage, error) {
	var g domain.GalleryImage
	var altJSON []byte
	if err := row.Scan(&g.ID, &g.URL, &g.Key, &altJSON, &g.Position); err != nil {
		return domain.GalleryImage{}, err
	}
	g.Alt = scanI18n(altJSON)
	return g, nil
}

func (r *Repo) GetGalleryImage(ctx context.Context, id int64) (domain.GalleryImage, error) {
	g, err := r.scanGalleryImage(r.db.QueryRowContext(ctx, getGalleryImageSQL, id))
	if err == sql.ErrNoRows {
		return domain.GalleryImage{}, domain.ErrNotFound
	}
	return g, err
}

func (r *Repo) ListGalleryImages(ctx context.Context) ([]domain.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, listGalleryImagesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GalleryImage
	for rows.Next() {
		g, err := r.scanGalleryImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteGalleryImage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteGalleryImageSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
