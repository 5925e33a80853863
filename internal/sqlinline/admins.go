package sqlinline

const QSelectAdminByEmail = `--sql cee08510-d98d-4490-b402-6359db233c0e
select id, email, password_hash, created_at
from admin_users
where lower(email) = lower($1::text)
limit 1;
`

const QInsertAdmin = `--sql b139071c-4767-4a88-b544-549a40f380ab
insert into admin_users (id, email, password_hash, created_at)
values (gen_random_uuid(), lower($1::text), $2::text, now())
on conflict (email) do update set password_hash = excluded.password_hash
returning id;
`
