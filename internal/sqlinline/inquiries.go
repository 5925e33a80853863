// Package sqlinline holds every SQL statement as a named constant. Each
// statement starts with a "--sql <uuid>" marker line that the runner strips
// and uses as a stable identifier in logs; the sqllint tool enforces the
// convention.
package sqlinline

const QInsertInquiry = `--sql d06323bf-63e9-44a1-95b5-6edf751fbb6b
insert into inquiries (
    id, status, country,
    contact_name, contact_phone, contact_email,
    data, generated_images, selected_image_index, conversation_log,
    created_at, updated_at
)
values (
    gen_random_uuid(), 'new', $1::text,
    $2::text, $3::text, $4::text,
    $5::jsonb, $6::jsonb, $7::int, $8::jsonb,
    now(), now()
)
returning id, created_at, updated_at;
`

const QSelectInquiryByID = `--sql 97c6cb8d-abd5-4ad8-84a7-92728a41dc26
select
    id, status, coalesce(country, ''),
    contact_name, contact_phone, coalesce(contact_email, ''),
    data, coalesce(generated_images, '[]'::jsonb), selected_image_index, conversation_log,
    quoted_price, coalesce(admin_notes, ''),
    created_at, updated_at
from inquiries
where id = $1::uuid
limit 1;
`

const QSelectInquiries = `--sql 03c7a5fa-64a4-45ca-a674-b1193909ccad
select
    id, status, coalesce(country, ''),
    contact_name, contact_phone, coalesce(contact_email, ''),
    data, coalesce(generated_images, '[]'::jsonb), selected_image_index, conversation_log,
    quoted_price, coalesce(admin_notes, ''),
    created_at, updated_at
from inquiries
where ($1::text = '' or status = $1::text)
order by created_at desc
limit $2::int offset $3::int;
`

const QCountInquiries = `--sql 8f3d92c1-5b7a-4e06-9c2f-1d4a8e7b6f05
select count(*)
from inquiries
where ($1::text = '' or status = $1::text);
`

const QUpdateInquiry = `--sql 139938d4-daee-438f-a713-f2ab28bbc5b9
update inquiries
set
    status = coalesce($2::text, status),
    admin_notes = coalesce($3::text, admin_notes),
    quoted_price = coalesce($4::numeric, quoted_price),
    updated_at = now()
where id = $1::uuid
returning id;
`
